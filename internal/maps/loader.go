// Package maps loads world descriptions and replays them into a simulation
// through its load-time insertion surface.
package maps

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gopkg.in/yaml.v3"

	"github.com/samdwyer/gokarel/internal/logger"
	"github.com/samdwyer/gokarel/internal/telemetry"
	"github.com/samdwyer/gokarel/internal/world"
)

// ErrDefaultMapMissing means neither the requested map nor the bundled default could be read.
// The simulation cannot continue without a world.
var ErrDefaultMapMissing = errors.New("default map file not found")

// Populator receives one call per object declared in a map.
type Populator interface {
	AddObjectBeeper(x, y, count int)
	AddObjectWall(x, y, length int, o world.Orientation)
	AddObjectRobot(x, y, direction, beepers int) error
	LoadPropertiesDefaultSize(width, height int)
}

// Count is a beeper count that may be written as "infinite" in a map file.
type Count int

// UnmarshalYAML accepts an integer or one of "infinite", "infinity", "unbounded".
func (c *Count) UnmarshalYAML(node *yaml.Node) error {
	switch strings.ToLower(node.Value) {
	case "infinite", "infinity", "unbounded":
		*c = world.Unbounded
		return nil
	}
	n, err := strconv.Atoi(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: bad beeper count %q: %w", node.Line, node.Value, err)
	}
	*c = Count(n)
	return nil
}

// File is the structure of a map document.
type File struct {
	Size *struct {
		Width  int `yaml:"width"`
		Height int `yaml:"height"`
	} `yaml:"size"`
	Walls []struct {
		X           int    `yaml:"x"`
		Y           int    `yaml:"y"`
		Length      int    `yaml:"length"`
		Orientation string `yaml:"orientation"`
	} `yaml:"walls"`
	Beepers []struct {
		X     int   `yaml:"x"`
		Y     int   `yaml:"y"`
		Count Count `yaml:"count"`
	} `yaml:"beepers"`
	Robots []struct {
		X         int   `yaml:"x"`
		Y         int   `yaml:"y"`
		Direction int   `yaml:"direction"`
		Beepers   Count `yaml:"beepers"`
	} `yaml:"robots"`
}

// Parse decodes and validates a map document. Nothing is returned unless the whole
// document is valid.
func Parse(raw []byte) (*File, error) {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	if err := validate(doc); err != nil {
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse map: %w", err)
	}
	return &f, nil
}

// Apply replays the map into p: size first, then walls, beepers and robots.
func (f *File) Apply(p Populator) error {
	if f.Size != nil {
		p.LoadPropertiesDefaultSize(f.Size.Width, f.Size.Height)
	}
	for _, w := range f.Walls {
		o, err := world.ParseOrientation(w.Orientation)
		if err != nil {
			return err
		}
		p.AddObjectWall(w.X, w.Y, w.Length, o)
	}
	for _, b := range f.Beepers {
		p.AddObjectBeeper(b.X, b.Y, int(b.Count))
	}
	for _, r := range f.Robots {
		if err := p.AddObjectRobot(r.X, r.Y, r.Direction, int(r.Beepers)); err != nil {
			return fmt.Errorf("robot at (%d, %d): %w", r.X, r.Y, err)
		}
	}
	return nil
}

// Load reads the map at path and applies it to p. An empty path selects the default
// map in defaults. A path that cannot be read falls back to the default with a
// warning; if the default is missing too, ErrDefaultMapMissing is returned.
func Load(ctx context.Context, defaults fs.FS, path, defaultName string, p Populator) error {
	tracer := telemetry.Tracer("maps")
	_, span := tracer.Start(ctx, "maps.load")
	defer span.End()

	raw, source, err := read(defaults, path, defaultName)
	span.SetAttributes(
		attribute.String("maps.requested", path),
		attribute.String("maps.source", source),
	)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	f, err := Parse(raw)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", source, err)
	}
	span.SetAttributes(
		attribute.Int("maps.walls", len(f.Walls)),
		attribute.Int("maps.beepers", len(f.Beepers)),
		attribute.Int("maps.robots", len(f.Robots)),
	)

	if err := f.Apply(p); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%s: %w", source, err)
	}
	return nil
}

// read returns the map bytes and the name they were read from.
func read(defaults fs.FS, path, defaultName string) ([]byte, string, error) {
	if path != "" {
		raw, err := os.ReadFile(path)
		if err == nil {
			return raw, path, nil
		}
		logger.Log.WithError(err).Warnf("map %s not found, using default map file", path)
	}

	if defaults == nil {
		return nil, defaultName, ErrDefaultMapMissing
	}
	raw, err := fs.ReadFile(defaults, defaultName)
	if err != nil {
		return nil, defaultName, fmt.Errorf("%w: %s: %v", ErrDefaultMapMissing, defaultName, err)
	}
	return raw, defaultName, nil
}
