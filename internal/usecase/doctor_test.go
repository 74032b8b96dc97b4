package usecase

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/3-lines-studio/viewpack/internal/adapters/cli"
	"github.com/3-lines-studio/viewpack/internal/config"
	"github.com/3-lines-studio/viewpack/internal/core"
)

func TestDiagnose(t *testing.T) {
	finder := &fakeFinder{paths: []core.PathDescriptor{
		descriptor("index.jade", ""),
		descriptor("widget.jade", ""),
		descriptor("widget/widget.html", ""),
		descriptor("legacy.haml", ""),
	}}
	engine := &countingEngine{}
	var out bytes.Buffer
	s := NewDoctorService(finder, fakeEngines{"jade": engine, "html": engine}, cli.NewWriterOutput(&out, &out))

	got := s.Diagnose(context.Background(), DoctorInput{AppRoot: "/app", Views: config.Views{Root: "views"}})
	assert.NoError(t, got.Error)
	assert.False(t, got.Healthy())
	assert.Equal(t, 4, got.Views)
	assert.Equal(t, []string{"legacy.haml"}, got.MissingEngine)
	assert.Equal(t, []Collision{{Key: "widget", Sources: []string{"widget.jade", "widget/widget.html"}}}, got.Collisions)
	assert.Zero(t, engine.server.Load(), "doctor never compiles")
	assert.Contains(t, out.String(), "widget/widget.html wins")
}

func TestDiagnoseHealthy(t *testing.T) {
	finder := &fakeFinder{paths: []core.PathDescriptor{descriptor("a.jade", ""), descriptor("b/c.jade", "")}}
	var out bytes.Buffer
	s := NewDoctorService(finder, fakeEngines{"jade": &countingEngine{}}, cli.NewWriterOutput(&out, &out))

	got := s.Diagnose(context.Background(), DoctorInput{AppRoot: "/app"})
	assert.True(t, got.Healthy())
	assert.Equal(t, "/app", finder.root)
	assert.Contains(t, out.String(), "no problems found")
}

func TestDiagnoseFinderError(t *testing.T) {
	finder := &fakeFinder{err: errBoom}
	s := NewDoctorService(finder, fakeEngines{}, cli.NewWriterOutput(&bytes.Buffer{}, &bytes.Buffer{}))

	got := s.Diagnose(context.Background(), DoctorInput{AppRoot: "/app"})
	assert.ErrorIs(t, got.Error, errBoom)
	assert.False(t, got.Healthy())
}
