package io

import (
	"github.com/hauke96/sigolo/v2"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"io"
	"os"
	"time"
)

func WriteNodesAsGeoJsonFile(nodes []*osm.Node, filename string) (err error) {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "Unable to create GeoJSON file %s", filename)
	}

	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "Unable to close file handle for GeoJSON file %s", filename)
		}
	}()

	return WriteNodesAsGeoJson(nodes, file)
}

// WriteNodesAsGeoJson writes the nodes as point features. The OSM ID is stored in the "@osm_id" property next to the
// tags of the node.
func WriteNodesAsGeoJson(nodes []*osm.Node, writer io.Writer) error {
	sigolo.Debugf("Write %d nodes to GeoJSON", len(nodes))
	writeStartTime := time.Now()

	featureCollection := geojson.NewFeatureCollection()
	for _, node := range nodes {
		geoJsonFeature := geojson.NewFeature(node.Point())

		geoJsonFeature.Properties["@osm_id"] = int64(node.ID)
		geoJsonFeature.Properties["@osm_type"] = "node"
		for _, tag := range node.Tags {
			geoJsonFeature.Properties[tag.Key] = tag.Value
		}

		featureCollection.Append(geoJsonFeature)
	}

	geojsonBytes, err := featureCollection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Unable to marshal GeoJSON feature collection")
	}

	_, err = writer.Write(geojsonBytes)
	if err != nil {
		return errors.Wrap(err, "Unable to write GeoJSON")
	}

	sigolo.Debugf("Finished writing in %s", time.Since(writeStartTime))

	return nil
}
