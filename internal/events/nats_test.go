package events

import (
	"encoding/json"
	"errors"
	"testing"

	"clueless/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type published struct {
	subject string
	data    []byte
}

type fakeConn struct {
	msgs []published
	err  error
}

func (f *fakeConn) Publish(subject string, data []byte) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, published{subject, data})
	return nil
}

func TestPublisherSkipsPrivateEvents(t *testing.T) {
	conn := &fakeConn{}
	p := NewPublisher(conn, "")

	p.Broadcast("s1", shared.PrivateTo("p1", shared.EventDisprovePrompt, map[string]any{"matching_cards": []string{"Rope"}}))
	p.Broadcast("s1", shared.Public(shared.EventTurnAdvanced, map[string]any{"current_player": "p2"}))

	require.Len(t, conn.msgs, 1)
	assert.Equal(t, "clueless.session.s1.turn_advanced", conn.msgs[0].subject)

	var ev struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(conn.msgs[0].data, &ev))
	assert.Equal(t, shared.EventTurnAdvanced, ev.Type)
	assert.Equal(t, "p2", ev.Data["current_player"])
}

func TestPublisherSubjectPrefix(t *testing.T) {
	p := NewPublisher(&fakeConn{}, "games.prod")
	assert.Equal(t, "games.prod.session.abc.game_over", p.Subject("abc", shared.EventGameOver))
}

func TestPublisherSurvivesPublishErrors(t *testing.T) {
	conn := &fakeConn{err: errors.New("connection closed")}
	p := NewPublisher(conn, "x")
	assert.NotPanics(t, func() {
		p.Broadcast("s1", shared.Public(shared.EventGameOver, nil))
	})
}
