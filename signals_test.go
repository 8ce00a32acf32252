package confect

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestEmitBindStart(_ *testing.T) {
	// Should not panic
	emitBindStart(context.Background(), "TestType", "server.")
}

func TestEmitBindComplete_Success(_ *testing.T) {
	emitBindComplete(context.Background(), "TestType", "server.", 10*time.Millisecond, 4, nil)
}

func TestEmitBindComplete_Error(_ *testing.T) {
	emitBindComplete(context.Background(), "TestType", "", 10*time.Millisecond, 4, errors.New("test error"))
}

func TestEmitMetadataComputed(_ *testing.T) {
	emitMetadataComputed(context.Background(), "TestType", 4, time.Millisecond)
}

func TestEmitProblemRecorded_Warning(_ *testing.T) {
	emitProblemRecorded(context.Background(), Problem{Severity: SeverityWarning, Message: "deprecated key"})
}

func TestEmitProblemRecorded_Error(_ *testing.T) {
	emitProblemRecorded(context.Background(), Problem{Severity: SeverityError, Message: "coercion failed", Cause: errors.New("test error")})
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalBindStart", SignalBindStart},
		{"SignalBindComplete", SignalBindComplete},
		{"SignalMetadataComputed", SignalMetadataComputed},
		{"SignalProblemRecorded", SignalProblemRecorded},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyTypeName", KeyTypeName},
		{"KeyPrefix", KeyPrefix},
		{"KeyAttributeCount", KeyAttributeCount},
		{"KeyDuration", KeyDuration},
		{"KeySeverity", KeySeverity},
		{"KeyMessage", KeyMessage},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}
