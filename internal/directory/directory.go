// Package directory reads the veterinarian address book from a vCard file
// or a CardDAV/WebDAV URL.
package directory

import (
	"cmp"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-petcare/internal/config"
	"github.com/zalando/go-keyring"
)

// Vet is one veterinarian entry of the directory.
type Vet struct {
	UID          string
	Name         string
	Organization string
	Phone        string
	Email        string
}

// Source selects where the directory is read from.
type Source struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string
	URL       string
	User      string
	Pass      string
}

// Loader reads and decodes the directory.
type Loader struct {
	Fetcher Fetcher
}

// NewLoader returns a Loader using the default HTTP fetcher.
func NewLoader() *Loader {
	return &Loader{Fetcher: NewHTTPFetcher()}
}

// Load returns the vets of src sorted by name. Malformed and nameless cards are skipped.
func (l *Loader) Load(ctx context.Context, src Source) ([]Vet, error) {
	r, err := l.open(ctx, src)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = r.Close() }()

	vets, err := Decode(ctx, r)
	if err != nil {
		return nil, err
	}
	slog.Info(config.MsgDirectoryLoaded,
		config.LogKeyComponent, config.CompDirectory,
		config.LogKeyMode, src.Mode,
		config.LogKeyCount, len(vets))
	return vets, nil
}

func (l *Loader) open(ctx context.Context, src Source) (io.ReadCloser, error) {
	switch src.Mode {
	case config.SourceModeLocal:
		if src.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(src.LocalPath)
	case config.SourceModeWeb:
		if src.URL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if l.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return l.Fetcher.Fetch(ctx, src.URL, src.User, src.Pass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, src.Mode)
	}
}

// Decode reads every card of r.
func Decode(ctx context.Context, r io.Reader) ([]Vet, error) {
	dec := vcard.NewDecoder(r)
	var vets []Vet
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompDirectory,
				config.LogKeyError, err)
			// A broken card can leave the decoder mid-stream; stop rather than loop.
			if errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			continue
		}

		name := cardName(card)
		if name == "" {
			continue
		}
		vets = append(vets, Vet{
			UID:          vetUID(card, name),
			Name:         name,
			Organization: card.PreferredValue(config.VCardORG),
			Phone:        card.PreferredValue(config.VCardTEL),
			Email:        card.PreferredValue(config.VCardEMAIL),
		})
	}

	slices.SortStableFunc(vets, func(a, b Vet) int {
		return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return vets, nil
}

// Names lists the vet names, in directory order.
func Names(vets []Vet) []string {
	out := make([]string, 0, len(vets))
	for _, v := range vets {
		out = append(out, v.Name)
	}
	return out
}

// cardName prefers FN, then the structured N.
func cardName(card vcard.Card) string {
	if fn := strings.TrimSpace(card.PreferredValue(config.VCardFN)); fn != "" {
		return fn
	}
	if n := card.Name(); n != nil {
		return strings.TrimSpace(strings.Join(strings.Fields(n.GivenName+" "+n.FamilyName), " "))
	}
	return ""
}

func vetUID(card vcard.Card, name string) string {
	if uid := card.Value(config.VCardUID); uid != "" {
		return uid
	}
	hash := sha256.Sum256([]byte(name))
	return fmt.Sprintf(config.FormatVetUID, hash[:config.UIDHashLen])
}

// PasswordFor returns the password stored in the OS keyring for user.
// A missing entry yields an empty password.
func PasswordFor(user string) string {
	if user == "" {
		return ""
	}
	pass, err := keyring.Get(config.KeyringService, user)
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) {
			slog.Warn(config.MsgPassFail,
				config.LogKeyComponent, config.CompDirectory,
				config.LogKeyUser, user,
				config.LogKeyError, err)
		}
		return ""
	}
	return pass
}

// SavePassword stores pass for user in the OS keyring.
func SavePassword(user, pass string) error {
	return keyring.Set(config.KeyringService, user, pass)
}
