package confect

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for binder events.
var (
	SignalBindStart        = capitan.NewSignal("confect.bind.start", "Bind operation beginning")
	SignalBindComplete     = capitan.NewSignal("confect.bind.complete", "Bind operation finished")
	SignalMetadataComputed = capitan.NewSignal("confect.metadata.computed", "Type metadata derived")
	SignalProblemRecorded  = capitan.NewSignal("confect.problem.recorded", "Problem recorded during a bind")
)

// Keys for typed event data.
var (
	KeyTypeName       = capitan.NewStringKey("type_name")
	KeyPrefix         = capitan.NewStringKey("prefix")
	KeyAttributeCount = capitan.NewIntKey("attribute_count")
	KeyDuration       = capitan.NewDurationKey("duration")
	KeySeverity       = capitan.NewStringKey("severity")
	KeyMessage        = capitan.NewStringKey("message")
	KeyError          = capitan.NewErrorKey("error")
)

// emitBindStart emits an event when a bind begins.
func emitBindStart(ctx context.Context, typeName, prefix string) {
	capitan.Emit(ctx, SignalBindStart,
		KeyTypeName.Field(typeName),
		KeyPrefix.Field(prefix),
	)
}

// emitBindComplete emits an event when a bind finishes.
func emitBindComplete(ctx context.Context, typeName, prefix string, duration time.Duration, attributes int, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyPrefix.Field(prefix),
		KeyDuration.Field(duration),
		KeyAttributeCount.Field(attributes),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalBindComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalBindComplete, fields...)
	}
}

// emitMetadataComputed emits an event when a type's metadata is derived.
func emitMetadataComputed(ctx context.Context, typeName string, attributes int, duration time.Duration) {
	capitan.Emit(ctx, SignalMetadataComputed,
		KeyTypeName.Field(typeName),
		KeyAttributeCount.Field(attributes),
		KeyDuration.Field(duration),
	)
}

// emitProblemRecorded emits an event for one recorded problem.
func emitProblemRecorded(ctx context.Context, p Problem) {
	fields := []capitan.Field{
		KeySeverity.Field(string(p.Severity)),
		KeyMessage.Field(p.Message),
	}
	if p.Cause != nil {
		fields = append(fields, KeyError.Field(p.Cause))
	}
	if p.Severity == SeverityError {
		capitan.Error(ctx, SignalProblemRecorded, fields...)
	} else {
		capitan.Emit(ctx, SignalProblemRecorded, fields...)
	}
}
