package events

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/policygen/internal/config"
	"git.home.luguber.info/inful/policygen/internal/eventstore"
	"git.home.luguber.info/inful/policygen/internal/foundation/errors"
)

type fakeConn struct {
	subject   string
	data      []byte
	publishes int
	flushErr  error
	pubErr    error
	closed    bool
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.pubErr != nil {
		return f.pubErr
	}
	f.publishes++
	f.subject = subject
	f.data = data
	return nil
}

func (f *fakeConn) FlushWithContext(context.Context) error { return f.flushErr }
func (f *fakeConn) Close()                                 { f.closed = true }

func sampleRecord() eventstore.GenerationRecord {
	at := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	return eventstore.NewGenerationRecord(at, "Acme", "html", []string{"introduction", "contact"}, "fp-1")
}

func TestFromRecord(t *testing.T) {
	rec := sampleRecord()
	ev := FromRecord(rec)

	assert.Equal(t, TypePolicyGenerated, ev.Type)
	assert.Equal(t, rec.ID, ev.ID)
	assert.Equal(t, rec.Timestamp, ev.Timestamp)
	assert.Equal(t, rec.Sections, ev.Sections)
	assert.Equal(t, "fp-1", ev.Fingerprint)
}

func TestNATSPublisherPublishesJSON(t *testing.T) {
	fc := &fakeConn{}
	p := newNATSPublisher(fc, "policy.generated", nil)

	ev := FromRecord(sampleRecord())
	require.NoError(t, p.Publish(t.Context(), ev))
	assert.Equal(t, 1, fc.publishes)
	assert.Equal(t, "policy.generated", fc.subject)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(fc.data, &decoded))
	assert.Equal(t, "policy.generated", decoded["type"])
	assert.Equal(t, "Acme", decoded["website"])
	assert.Equal(t, "html", decoded["format"])
	assert.NotContains(t, decoded, "settings")

	require.NoError(t, p.Close())
	assert.True(t, fc.closed)
}

func TestNATSPublisherErrorsAreMessaging(t *testing.T) {
	ev := FromRecord(sampleRecord())

	p := newNATSPublisher(&fakeConn{pubErr: stderrors.New("no connection")}, "s", nil)
	err := p.Publish(t.Context(), ev)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryMessaging))

	p = newNATSPublisher(&fakeConn{flushErr: stderrors.New("timeout")}, "s", nil)
	err = p.Publish(t.Context(), ev)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryMessaging))
}

func TestNewNATSPublisherDisabled(t *testing.T) {
	_, err := NewNATSPublisher(config.EventsConfig{Enabled: false}, nil)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryConfig))
}

func TestNoopPublisher(t *testing.T) {
	var p Publisher = NoopPublisher{}
	assert.NoError(t, p.Publish(t.Context(), PolicyGenerated{}))
	assert.NoError(t, p.Close())
}
