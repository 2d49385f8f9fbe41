package sensor

import (
	"time"

	"github.com/joeydtaylor/sdrhunter/pkg/internal/types"
	"github.com/joeydtaylor/sdrhunter/pkg/logschema"
)

// RegisterOnCatalogSaved registers callbacks fired after the catalog is persisted.
func (s *Sensor) RegisterOnCatalogSaved(callback ...func(types.ComponentMetadata, string, int)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnCatalogSaved = append(s.OnCatalogSaved, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnCatalogSaved invokes registered catalog saved callbacks.
func (s *Sensor) InvokeOnCatalogSaved(c types.ComponentMetadata, store string, size int) {
	s.NotifyLoggers(types.InfoLevel, "catalog saved",
		logschema.FieldComponent, c,
		logschema.FieldEvent, "CatalogSaved",
		"store", store,
		"stations", size,
	)
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnCatalogSaved) {
		if cb == nil {
			continue
		}
		cb(c, store, size)
	}
}

// RegisterOnStageComplete registers callbacks timing pipeline stages.
func (s *Sensor) RegisterOnStageComplete(callback ...func(types.ComponentMetadata, string, time.Duration)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnStageComplete = append(s.OnStageComplete, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnStageComplete invokes registered stage callbacks.
func (s *Sensor) InvokeOnStageComplete(c types.ComponentMetadata, stage string, d time.Duration) {
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnStageComplete) {
		if cb == nil {
			continue
		}
		cb(c, stage, d)
	}
}

// RegisterOnError registers callbacks for component errors.
func (s *Sensor) RegisterOnError(callback ...func(types.ComponentMetadata, error)) {
	if len(callback) == 0 {
		return
	}
	s.callbackLock.Lock()
	s.OnError = append(s.OnError, callback...)
	s.callbackLock.Unlock()
}

// InvokeOnError invokes registered error callbacks.
func (s *Sensor) InvokeOnError(c types.ComponentMetadata, err error) {
	s.NotifyLoggers(types.WarnLevel, "component error",
		logschema.FieldComponent, c,
		logschema.FieldEvent, "Error",
		logschema.FieldResult, logschema.ResultFailure,
		logschema.FieldError, err,
	)
	for _, cb := range snapshotCallbacks(&s.callbackLock, s.OnError) {
		if cb == nil {
			continue
		}
		cb(c, err)
	}
}
