package osm

import (
	"context"
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"io"
	"os"
	"strings"
	"time"
)

type Format int

const (
	FormatXml Format = iota
	FormatPbf
)

func (f Format) String() string {
	switch f {
	case FormatXml:
		return "osm-xml"
	case FormatPbf:
		return "osm-pbf"
	}
	return "unknown"
}

// FormatForFilename determines the input format by the file extension (.osm or .pbf).
func FormatForFilename(filename string) (Format, error) {
	if strings.HasSuffix(filename, ".osm") {
		return FormatXml, nil
	} else if strings.HasSuffix(filename, ".pbf") {
		return FormatPbf, nil
	}
	return -1, errors.Errorf("Input file %s must be an .osm or .pbf file", filename)
}

type DataHandler interface {
	Name() string
	Init() error
	HandleNode(node *osm.Node) error
	HandleWay(way *osm.Way) error
	HandleRelation(relation *osm.Relation) error
	Done() error
}

type Reader struct {
	firstWayHasBeenProcessed      bool
	firstRelationHasBeenProcessed bool
}

func NewReader() *Reader {
	return &Reader{}
}

func (r *Reader) Read(filename string, handlers ...DataHandler) error {
	format, err := FormatForFilename(filename)
	if err != nil {
		return err
	}

	file, err := os.Open(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to open OSM input file %s", filename)
	}
	defer file.Close()

	sigolo.Infof("Start processing OSM data file %s", filename)
	return r.ReadFrom(file, format, handlers...)
}

func (r *Reader) ReadFrom(reader io.Reader, format Format, handlers ...DataHandler) error {
	r.firstWayHasBeenProcessed = false
	r.firstRelationHasBeenProcessed = false

	var scanner osm.Scanner
	switch format {
	case FormatXml:
		scanner = osmxml.New(context.Background(), reader)
	case FormatPbf:
		scanner = osmpbf.New(context.Background(), reader, 1)
	default:
		return errors.Errorf("Unknown OSM data format %d", format)
	}

	importStartTime := time.Now()

	for _, handler := range handlers {
		err := handler.Init()
		if err != nil {
			return errors.Wrapf(err, "Initializing OSM data handler '%s' failed", handler.Name())
		}
	}

	sigolo.Debugf("Start processing %s nodes (1/3)", format)
	err := r.dispatch(scanner, handlers)
	if err != nil {
		scanner.Close()
		return err
	}

	err = scanner.Err()
	if err != nil {
		scanner.Close()
		return errors.Wrapf(err, "Unable to read %s data", format)
	}

	for _, handler := range handlers {
		err = handler.Done()
		if err != nil {
			scanner.Close()
			return errors.Wrapf(err, "Calling done function on handler '%s' failed", handler.Name())
		}
	}

	err = scanner.Close()
	if err != nil {
		return errors.Wrapf(err, "Unable to close OSM scanner")
	}

	sigolo.Infof("Done processing OSM data in %s", time.Since(importStartTime))

	return nil
}

func (r *Reader) dispatch(scanner osm.Scanner, handlers []DataHandler) error {
	var err error

	for scanner.Scan() {
		switch osmObj := scanner.Object().(type) {
		case *osm.Node:
			for _, handler := range handlers {
				err = handler.HandleNode(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling node %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		case *osm.Way:
			if !r.firstWayHasBeenProcessed {
				sigolo.Debug("Start processing ways (2/3)")
				r.firstWayHasBeenProcessed = true
			}

			for _, handler := range handlers {
				err = handler.HandleWay(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling way %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		case *osm.Relation:
			if !r.firstRelationHasBeenProcessed {
				sigolo.Debug("Start processing relations (3/3)")
				r.firstRelationHasBeenProcessed = true
			}

			for _, handler := range handlers {
				err = handler.HandleRelation(osmObj)
				if err != nil {
					return errors.Wrapf(err, "Handling relation %d using handler '%s' failed", osmObj.ID, handler.Name())
				}
			}
		}
	}

	return nil
}
