package usecase

import (
	"testing"
	"time"

	"github.com/avant-atelier/backend/internal/domain"
)

func managerFixture() *SessionManager {
	fetcher := &stubFetcher{records: map[string][]domain.ProductRecord{
		"Tops.json": {{ID: "t1", Name: "Linen Shirt"}},
	}}
	catalog := NewCatalogService(fetcher, []domain.SourceSpec{{File: "Tops.json", Tag: "top"}})
	return NewSessionManager(catalog, 5, time.Minute)
}

func TestSessionManager(t *testing.T) {
	t.Run("get creates then reuses", func(t *testing.T) {
		m := managerFixture()

		first := m.Get("popup-1")
		second := m.Get("popup-1")
		if first != second {
			t.Error("same id returned different sessions")
		}
		if m.Len() != 1 {
			t.Errorf("Len = %d, want 1", m.Len())
		}

		if other := m.Get("popup-2"); other == first {
			t.Error("distinct ids share a session")
		}
		if m.Len() != 2 {
			t.Errorf("Len = %d, want 2", m.Len())
		}
	})

	t.Run("empty id maps to default", func(t *testing.T) {
		m := managerFixture()

		anonymous := m.Get("")
		named := m.Get("default")
		if anonymous != named {
			t.Error("empty id did not resolve to the default session")
		}
	})

	t.Run("remove drops the session", func(t *testing.T) {
		m := managerFixture()

		before := m.Get("popup-1")
		m.Remove("popup-1")
		if m.Len() != 0 {
			t.Errorf("Len = %d, want 0 after remove", m.Len())
		}
		if after := m.Get("popup-1"); after == before {
			t.Error("removed session was handed out again")
		}
	})
}
