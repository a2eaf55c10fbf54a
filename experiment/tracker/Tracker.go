// Package tracker defines Trackers, which track and save data in an
// experiment, along with functions to load and summarize saved data
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"

	ts "github.com/catbotrl/catbot/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save() error
}

// LoadData loads and returns the per-episode returns saved by a
// Return Tracker
func LoadData(filename string) ([]float64, error) {
	var data []float64
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadData: %w", err)
	}
	return data, nil
}

// LoadLengths loads and returns the episode lengths saved by an
// EpisodeLength Tracker
func LoadLengths(filename string) ([]int, error) {
	var data []int
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadLengths: %w", err)
	}
	return data, nil
}

// LoadVisits loads and returns the state visit counts saved by a
// StateVisits Tracker
func LoadVisits(filename string) (map[string]int, error) {
	var data map[string]int
	if err := load(filename, &data); err != nil {
		return nil, fmt.Errorf("loadVisits: %w", err)
	}
	return data, nil
}

// load decodes the gob-encoded contents of a file into data
func load(filename string, data interface{}) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("could not open data file: %w", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err := dec.Decode(data); err != nil {
		return fmt.Errorf("could not decode data: %w", err)
	}
	return nil
}

// Save gob-encodes data into a new file
func Save(filename string, data interface{}) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not open save file: %w", err)
	}

	en := gob.NewEncoder(file)
	if err = en.Encode(data); err != nil {
		file.Close()
		return fmt.Errorf("could not encode data: %w", err)
	}
	return file.Close()
}
