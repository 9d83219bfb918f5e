package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/teamforge/internal/domain/dedupe"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/pkg/logger"
)

// CSVParticipantStore implements ParticipantStore on a single CSV file.
type CSVParticipantStore struct {
	mu   sync.Mutex
	path string
	opts csvOptions
}

var _ ParticipantStore = (*CSVParticipantStore)(nil)

// NewCSVParticipantStore creates a store backed by path.
func NewCSVParticipantStore(path string, opts ...Option) *CSVParticipantStore {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &CSVParticipantStore{path: path, opts: o}
}

// Path returns the backing file.
func (s *CSVParticipantStore) Path() string { return s.path }

// Load reads every participant. Rows with fewer than eight columns are
// skipped; rows with bad numbers or names fail with ErrMalformedRow.
func (s *CSVParticipantStore) Load(ctx context.Context) ([]model.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save rewrites the file with people. It fails with ErrDuplicateID, leaving
// the file untouched, when two people share an ID.
func (s *CSVParticipantStore) Save(ctx context.Context, people []model.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, people)
}

// Append loads the file, checks the new ID is unused and writes it back.
func (s *CSVParticipantStore) Append(ctx context.Context, p model.Person) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidPerson)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	people, err := s.load(ctx)
	if err != nil {
		return err
	}
	seen := s.newDeduper()
	for _, existing := range people {
		seen.SeenAndRecord(ctx, existing.ID)
	}
	if seen.Seen(ctx, p.ID) {
		return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
	}
	return s.save(ctx, append(people, p))
}

func (s *CSVParticipantStore) newDeduper() dedupe.Deduper {
	if s.opts.caseInsensitive {
		return dedupe.NewInMemoryDeduper(dedupe.WithCaseInsensitive())
	}
	return dedupe.NewInMemoryDeduper()
}

func (s *CSVParticipantStore) load(ctx context.Context) ([]model.Person, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.opts.logger.Info(ctx, "participants file missing, creating it", logger.String("path", s.path))
		if err := s.save(ctx, nil); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open participants %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	seen := s.newDeduper()
	var people []model.Person
	for line := 1; ; line++ {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		if line == 1 && isHeader(record) {
			continue
		}
		if len(record) < len(ParticipantHeader) {
			s.opts.logger.Warn(ctx, "skipping short participant row",
				logger.Int("line", line),
				logger.Int("columns", len(record)),
			)
			continue
		}

		p, err := parsePerson(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedRow, line, err)
		}
		if seen.SeenAndRecord(ctx, p.ID) {
			return nil, fmt.Errorf("%w: %s on line %d", ErrDuplicateID, p.ID, line)
		}
		people = append(people, p)
	}

	s.opts.logger.Debug(ctx, "participants loaded",
		logger.String("path", s.path),
		logger.Int("count", len(people)),
	)
	return people, nil
}

func (s *CSVParticipantStore) save(ctx context.Context, people []model.Person) error {
	seen := s.newDeduper()
	rows := make([][]string, 0, len(people)+1)
	rows = append(rows, ParticipantHeader)
	for _, p := range people {
		if seen.SeenAndRecord(ctx, strings.TrimSpace(p.ID)) {
			return fmt.Errorf("%w: %s", ErrDuplicateID, p.ID)
		}
		rows = append(rows, formatPerson(p))
	}
	if err := writeCSV(s.path, rows); err != nil {
		return err
	}
	s.opts.logger.Debug(ctx, "participants saved",
		logger.String("path", s.path),
		logger.Int("count", len(people)),
	)
	return nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), ParticipantHeader[0])
}

func parsePerson(record []string) (model.Person, error) {
	field := func(i int) string { return strings.TrimSpace(record[i]) }

	id := field(0)
	if id == "" {
		return model.Person{}, errors.New("empty id")
	}
	skill, err := strconv.Atoi(field(4))
	if err != nil {
		return model.Person{}, fmt.Errorf("skill level: %w", err)
	}
	role, err := model.ParseRole(field(5))
	if err != nil {
		return model.Person{}, err
	}
	score, err := strconv.Atoi(field(6))
	if err != nil {
		return model.Person{}, fmt.Errorf("personality score: %w", err)
	}
	category, err := model.ParseCategory(field(7))
	if err != nil {
		return model.Person{}, err
	}

	return model.Person{
		ID:       id,
		Name:     field(1),
		Email:    field(2),
		Game:     field(3),
		Skill:    skill,
		Role:     role,
		Score:    score,
		Category: category,
	}, nil
}

func formatPerson(p model.Person) []string {
	return []string{
		p.ID,
		p.Name,
		p.Email,
		p.Game,
		strconv.Itoa(p.Skill),
		p.Role.String(),
		strconv.Itoa(p.Score),
		p.Category.String(),
	}
}

// writeCSV writes rows to a temporary file next to path and renames it over
// path, so readers never see a half-written file.
func writeCSV(path string, rows [][]string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file in %s: %w", dir, err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
