package ui

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/recera/condex/cmd/condex/internal/config"
)

func TestModel_GetConfig(t *testing.T) {
	m := NewModel()
	m.textInputs[inputSourceDirs].SetValue("app, widgets")
	m.textInputs[inputExtensions].SetValue(".vex")
	m.textInputs[inputSuffix].SetValue(".gen.vex")
	m.textInputs[inputPort].SetValue("4000")
	m.cacheEnabled = false

	want := config.DefaultConfig()
	want.SourceDirs = []string{"app", "widgets"}
	want.Extensions = []string{".vex"}
	want.OutputSuffix = ".gen.vex"
	want.Watch.Port = 4000
	want.Cache.Enabled = false

	if diff := cmp.Diff(want, m.GetConfig()); diff != "" {
		t.Errorf("GetConfig() mismatch (-want +got):\n%s", diff)
	}
}

func TestModel_EmptyFieldsFallBackToDefaults(t *testing.T) {
	m := NewModel()
	if diff := cmp.Diff(config.DefaultConfig(), m.GetConfig()); diff != "" {
		t.Errorf("GetConfig() on an untouched form differs from defaults (-want +got):\n%s", diff)
	}
}

func TestModel_ValidateBasics(t *testing.T) {
	m := NewModel()

	m.textInputs[inputPort].SetValue("abc")
	if msg := m.validateBasics(); msg == "" {
		t.Error("non-numeric port passed validation")
	}

	m.textInputs[inputPort].SetValue("4000")
	m.textInputs[inputSuffix].SetValue("genvex")
	if msg := m.validateBasics(); msg == "" {
		t.Error("suffix without leading dot passed validation")
	}

	m.textInputs[inputSuffix].SetValue(".gen.vex")
	if msg := m.validateBasics(); msg != "" {
		t.Errorf("valid form rejected: %s", msg)
	}
}

func TestSplitList(t *testing.T) {
	got := splitList(" app , widgets ,, ")
	want := []string{"app", "widgets"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("splitList() mismatch (-want +got):\n%s", diff)
	}
}
