package checkpointer

import (
	"fmt"
	"strings"
	"time"
)

// extension returns ext with a leading dot, or the empty string if
// ext is empty
func extension(ext string) string {
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// FilenameEnumerator returns a function which will return filenames
// with a counter suffix. Each time the returned function is called,
// the counter will be one higher than on the previous call, starting
// at start+1. The filename parameter is the full filename with its
// path, while the ext parameter determines the file extension.
//
// For example, FilenameEnumerator(0, "out/returns", "bin") generates
// out/returns-1.bin, out/returns-2.bin, ...
func FilenameEnumerator(start int, filename, ext string) func() string {
	i := start
	ext = extension(ext)

	return func() string {
		i++
		return fmt.Sprintf("%v-%v%v", filename, i, ext)
	}
}

// FileTimer returns a function which will append to a filename the
// number of nanoseconds since January 1, 1970.
func FileTimer(filename, ext string) func() string {
	ext = extension(ext)

	return func() string {
		return fmt.Sprintf("%v-%v%v", filename, time.Now().UnixNano(), ext)
	}
}
