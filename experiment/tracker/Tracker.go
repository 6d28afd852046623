// Package tracker implements Trackers, which track and save data
// generated in an experiment
package tracker

import (
	"encoding/gob"
	"log"
	"os"

	ts "github.com/smartroom/gohvac/timestep"
)

// Interface Tracker keeps track of experiment data and saves the data
// after the experiment has finished
type Tracker interface {
	Track(t ts.TimeStep)
	Save()
}

// LoadFloats loads and returns float64 data saved by a Tracker
func LoadFloats(filename string) []float64 {
	var data []float64
	load(filename, &data)
	return data
}

// LoadInts loads and returns int data saved by a Tracker
func LoadInts(filename string) []int {
	var data []int
	load(filename, &data)
	return data
}

// load decodes the gob-encoded data in filename into e
func load(filename string, e interface{}) {
	file, err := os.Open(filename)
	if err != nil {
		log.Fatalf("could not open data file: %v", err)
	}
	defer file.Close()

	dec := gob.NewDecoder(file)
	if err := dec.Decode(e); err != nil {
		log.Fatalf("could not decode data: %v", err)
	}
}

// save gob-encodes e into filename
func save(filename string, e interface{}) {
	file, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not open save file: %v", err)
	}
	defer file.Close()

	en := gob.NewEncoder(file)
	if err := en.Encode(e); err != nil {
		log.Fatalf("could not encode data: %v", err)
	}
}
