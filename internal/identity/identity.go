// Package identity issues the client-side ids: the installation's user
// id and the ids of every row this client creates.
package identity

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"plan2read/internal/prefs"
)

const suffixLen = 9

// Id prefixes for client-created rows.
const (
	PrefixUser     = "user"
	PrefixSchedule = "sched"
	PrefixSession  = "sess"
	PrefixShared   = "shared"
	PrefixPost     = "post"
	PrefixComment  = "cmt"
)

// Generator builds ids of the form <prefix>_<unix millis>_<suffix>.
// The random suffix keeps ids distinct within one millisecond.
type Generator struct {
	Now func() time.Time
}

func (g Generator) New(prefix string) string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return fmt.Sprintf("%s_%d_%s", prefix, now().UnixMilli(), randomSuffix())
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:suffixLen]
}

// Provider hands out the installation's user id, creating and storing
// it on first use.
type Provider struct {
	Prefs prefs.Store
	IDs   Generator
}

func (p Provider) UserID() (string, error) {
	if id, ok := p.Prefs.Get(prefs.KeyUserID); ok && id != "" {
		return id, nil
	}
	id := p.IDs.New(PrefixUser)
	if err := p.Prefs.Set(prefs.KeyUserID, id); err != nil {
		return "", fmt.Errorf("store user id: %w", err)
	}
	return id, nil
}
