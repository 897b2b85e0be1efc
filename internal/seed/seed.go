// Package seed loads the reference data, the initial village list and the
// first admin account. Every step is an upsert so the seeder can be rerun.
package seed

import (
	"context"
	"fmt"
	"strings"

	"uprala/internal/auth"
	"uprala/internal/utils"
	"uprala/pkg/types"

	"github.com/sirupsen/logrus"
)

type lookupSeed struct {
	Key   string
	Label string
}

type ngoSeed struct {
	Name string
	Type string
}

type contactSeed struct {
	Name  string
	Phone string
	Role  types.ContactRole
}

type LookupWriter interface {
	UpsertSupportType(ctx context.Context, key, label string) (*types.SupportType, error)
	UpsertScale(ctx context.Context, key, label string) (*types.Scale, error)
}

type NGOWriter interface {
	UpsertNGOByName(ctx context.Context, ngo *types.NGO) error
}

type VillageWriter interface {
	UpsertVillageByName(ctx context.Context, village *types.Village) error
	MarkVillages(ctx context.Context, flag types.VillageFlag, names []string) (*types.MarkVillagesResult, error)
}

type ContactWriter interface {
	ContactsByVillage(ctx context.Context, villageID string, filter *types.ContactFilter) ([]*types.Contact, error)
	CreateContact(ctx context.Context, contact *types.Contact) error
}

type AdminWriter interface {
	UpsertAdmin(ctx context.Context, username, passwordHash string) (*types.AdminUser, error)
}

type Seeder struct {
	logger   logrus.FieldLogger
	lookups  LookupWriter
	ngos     NGOWriter
	villages VillageWriter
	contacts ContactWriter
	admins   AdminWriter
}

func New(
	logger logrus.FieldLogger,
	lookups LookupWriter,
	ngos NGOWriter,
	villages VillageWriter,
	contacts ContactWriter,
	admins AdminWriter,
) *Seeder {
	return &Seeder{
		logger:   logger,
		lookups:  lookups,
		ngos:     ngos,
		villages: villages,
		contacts: contacts,
		admins:   admins,
	}
}

// Admin is the account created by the seeder. An empty password skips it.
type Admin struct {
	Username string
	Password string
}

func (s *Seeder) Run(ctx context.Context, admin Admin) error {
	steps := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"lookups", s.SeedLookups},
		{"ngos", s.SeedNGOs},
		{"villages", s.SeedVillages},
		{"priority villages", s.MarkPriorityVillages},
	}

	for _, step := range steps {
		s.logger.WithField("step", step.name).Info("seeding")
		if err := step.fn(ctx); err != nil {
			return fmt.Errorf("failed to seed %s: %w", step.name, err)
		}
	}

	if admin.Password == "" {
		s.logger.Warn("no admin password supplied, skipping admin user")
		return nil
	}

	return s.SeedAdmin(ctx, admin)
}

func (s *Seeder) SeedLookups(ctx context.Context) error {
	for _, st := range supportTypes {
		if _, err := s.lookups.UpsertSupportType(ctx, st.Key, st.Label); err != nil {
			return err
		}
	}

	for _, sc := range scales {
		if _, err := s.lookups.UpsertScale(ctx, sc.Key, sc.Label); err != nil {
			return err
		}
	}

	s.logger.WithFields(logrus.Fields{
		"support_types": len(supportTypes),
		"scales":        len(scales),
	}).Info("lookups seeded")

	return nil
}

func (s *Seeder) SeedNGOs(ctx context.Context) error {
	for _, n := range ngos {
		ngo := &types.NGO{Name: n.Name, Type: utils.StringPtr(n.Type)}
		if err := s.ngos.UpsertNGOByName(ctx, ngo); err != nil {
			return err
		}
	}
	return nil
}

// SeedVillages upserts every village by name and gives villages that have no
// contacts yet their patwari, when one is known.
func (s *Seeder) SeedVillages(ctx context.Context) error {
	contactIndex := make(map[string]contactSeed, len(patwariContacts))
	for name, c := range patwariContacts {
		contactIndex[contactKey(name)] = c
	}

	var withContact int
	for _, raw := range villageNames {
		name := utils.NormalizeSpace(raw)
		if name == "" {
			continue
		}

		village := &types.Village{Name: name}
		if err := s.villages.UpsertVillageByName(ctx, village); err != nil {
			s.logger.WithError(err).WithField("village", name).Error("failed to upsert village")
			continue
		}

		c, ok := contactIndex[contactKey(name)]
		if !ok {
			continue
		}

		existing, err := s.contacts.ContactsByVillage(ctx, village.ID, nil)
		if err != nil {
			return err
		}
		if len(existing) > 0 {
			continue
		}

		contact := &types.Contact{
			VillageID: village.ID,
			Name:      c.Name,
			Phone:     utils.StringPtr(c.Phone),
			Role:      c.Role,
		}
		if err := s.contacts.CreateContact(ctx, contact); err != nil {
			return err
		}
		withContact++
	}

	s.logger.WithFields(logrus.Fields{
		"villages":     len(villageNames),
		"contacts_new": withContact,
	}).Info("villages seeded")

	return nil
}

func (s *Seeder) MarkPriorityVillages(ctx context.Context) error {
	for _, flag := range []types.VillageFlag{types.VillageFlagNeedsHelp, types.VillageFlagMostEffected} {
		result, err := s.villages.MarkVillages(ctx, flag, priorityVillages)
		if err != nil {
			return err
		}

		entry := s.logger.WithFields(logrus.Fields{
			"flag":        flag,
			"updated":     result.Updated,
			"not_matched": len(result.NotMatched),
		})
		if len(result.NotMatched) > 0 {
			entry = entry.WithField("unmatched", strings.Join(result.NotMatched, ", "))
		}
		entry.Info("villages marked")
	}
	return nil
}

func (s *Seeder) SeedAdmin(ctx context.Context, admin Admin) error {
	username := strings.TrimSpace(admin.Username)
	if username == "" {
		username = "admin"
	}

	hash, err := auth.HashPassword(admin.Password)
	if err != nil {
		return err
	}

	user, err := s.admins.UpsertAdmin(ctx, username, hash)
	if err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	s.logger.WithField("username", user.Username).Info("admin user seeded")
	return nil
}

func contactKey(name string) string {
	return strings.ToLower(utils.NormalizeSpace(name))
}
