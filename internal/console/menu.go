// Package console implements the line-oriented registration and team
// formation menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/okian/teamforge/internal/adapters/repository"
	service "github.com/okian/teamforge/internal/app"
	"github.com/okian/teamforge/internal/domain/model"
	"github.com/okian/teamforge/internal/domain/personality"
	"github.com/okian/teamforge/pkg/logger"
)

// Menu choices.
const (
	choiceAdd  = "1"
	choiceForm = "2"
	choiceExit = "3"
)

// Input bounds.
const (
	minSkill = 1
	maxSkill = 10
)

// Former forms teams from people.
type Former interface {
	FormTeams(ctx context.Context, people []model.Person, size int) (*service.Result, error)
}

// Menu reads commands from in and writes prompts and results to out.
type Menu struct {
	in     *bufio.Scanner
	out    io.Writer
	people repository.ParticipantStore
	teams  repository.TeamWriter
	former Former

	teamSize int
	newID    func() string
	onFormed func(ctx context.Context, res *service.Result) error

	ok   *color.Color
	bad  *color.Color
	head *color.Color

	logger logger.Logger
}

// New creates a Menu.
func New(in io.Reader, out io.Writer, people repository.ParticipantStore, teams repository.TeamWriter, former Former, opts ...Option) *Menu {
	m := &Menu{
		in:       bufio.NewScanner(in),
		out:      out,
		people:   people,
		teams:    teams,
		former:   former,
		teamSize: 5,
		newID:    uuid.NewString,
		ok:       color.New(color.FgGreen),
		bad:      color.New(color.FgRed),
		head:     color.New(color.FgCyan, color.Bold),
		logger:   logger.Get().Named("console"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the menu until the user exits or input ends. Action failures are
// printed and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		m.head.Fprintln(m.out, "\n=== Team Formation ===")
		fmt.Fprintln(m.out, "1. Add member")
		fmt.Fprintln(m.out, "2. Form teams")
		fmt.Fprintln(m.out, "3. Exit")

		choice, err := m.ask("Choose an option: ")
		if err != nil {
			return ignoreEOF(err)
		}

		switch choice {
		case choiceAdd:
			err = m.addMember(ctx)
		case choiceForm:
			err = m.formTeams(ctx)
		case choiceExit:
			fmt.Fprintln(m.out, "Goodbye.")
			return nil
		default:
			m.bad.Fprintf(m.out, "Unknown option %q\n", choice)
			continue
		}

		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			m.logger.Error(ctx, "menu action failed", logger.String("choice", choice), logger.Error(err))
			m.bad.Fprintf(m.out, "Error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (m *Menu) addMember(ctx context.Context) error {
	id, err := m.ask("ID (blank to generate): ")
	if err != nil {
		return err
	}
	if id == "" {
		id = m.newID()
	}

	name, err := m.askText("Name: ", func(s string) bool { return s != "" }, "name must not be empty")
	if err != nil {
		return err
	}
	email, err := m.askText("Email: ", func(s string) bool { return strings.Contains(s, "@") }, "email must contain @")
	if err != nil {
		return err
	}

	games := model.Games()
	for i, g := range games {
		fmt.Fprintf(m.out, "  %d. %s\n", i+1, g)
	}
	gameChoice, err := m.askInt("Preferred game: ", 1, len(games))
	if err != nil {
		return err
	}
	game, _ := model.GameFromChoice(gameChoice)

	skill, err := m.askInt(fmt.Sprintf("Skill level (%d-%d): ", minSkill, maxSkill), minSkill, maxSkill)
	if err != nil {
		return err
	}

	roles := model.Roles()
	for i, r := range roles {
		fmt.Fprintf(m.out, "  %d. %s\n", i+1, r)
	}
	roleChoice, err := m.askInt("Preferred role: ", 1, len(roles))
	if err != nil {
		return err
	}

	fmt.Fprintf(m.out, "Rate each statement from %d (disagree) to %d (agree).\n", personality.MinRating, personality.MaxRating)
	answers := make([]int, 0, personality.QuestionCount)
	for _, q := range personality.Questions {
		a, err := m.askInt(q+" ", personality.MinRating, personality.MaxRating)
		if err != nil {
			return err
		}
		answers = append(answers, a)
	}
	score, category, err := personality.Evaluate(answers)
	if err != nil {
		return err
	}

	p := model.Person{
		ID:       id,
		Name:     name,
		Email:    email,
		Game:     game,
		Skill:    skill,
		Role:     model.RoleFromChoice(roleChoice),
		Score:    score,
		Category: category,
	}
	if err := m.people.Append(ctx, p); err != nil {
		return fmt.Errorf("save member: %w", err)
	}

	m.logger.Info(ctx, "member added", logger.String("id", p.ID), logger.String("category", category.String()))
	m.ok.Fprintf(m.out, "Added %s (%s) as %s with score %d\n", p.Name, p.ID, category, score)
	return nil
}

func (m *Menu) formTeams(ctx context.Context) error {
	size, err := m.askTeamSize()
	if err != nil {
		return err
	}

	people, err := m.people.Load(ctx)
	if err != nil {
		return fmt.Errorf("load members: %w", err)
	}
	res, err := m.former.FormTeams(ctx, people, size)
	if err != nil {
		return fmt.Errorf("form teams: %w", err)
	}

	for _, t := range res.Teams {
		m.head.Fprintln(m.out, t.Summary())
		for _, p := range t.Members {
			fmt.Fprintf(m.out, "  - %s [%s] %s, %s, skill %d\n", p.Name, p.Category, p.Role, p.Game, p.Skill)
		}
	}
	m.ok.Fprintln(m.out, res.Summary())

	if len(res.Teams) > 0 {
		if err := m.teams.Save(ctx, res.Teams); err != nil {
			return fmt.Errorf("save teams: %w", err)
		}
	}
	if m.onFormed != nil {
		if err := m.onFormed(ctx, res); err != nil {
			return err
		}
	}
	return nil
}

func (m *Menu) askTeamSize() (int, error) {
	for {
		s, err := m.ask(fmt.Sprintf("Team size [%d]: ", m.teamSize))
		if err != nil {
			return 0, err
		}
		if s == "" {
			return m.teamSize, nil
		}
		n, err := strconv.Atoi(s)
		if err == nil && n > 0 {
			return n, nil
		}
		m.bad.Fprintln(m.out, "Team size must be a positive number.")
	}
}

// ask prints prompt and returns the next trimmed line.
func (m *Menu) ask(prompt string) (string, error) {
	fmt.Fprint(m.out, prompt)
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

// askText repeats prompt until valid accepts the answer.
func (m *Menu) askText(prompt string, valid func(string) bool, hint string) (string, error) {
	for {
		s, err := m.ask(prompt)
		if err != nil {
			return "", err
		}
		if valid(s) {
			return s, nil
		}
		m.bad.Fprintf(m.out, "Invalid input: %s.\n", hint)
	}
}

// askInt repeats prompt until the answer is a number in [lo, hi].
func (m *Menu) askInt(prompt string, lo, hi int) (int, error) {
	for {
		s, err := m.ask(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(s)
		if err == nil && n >= lo && n <= hi {
			return n, nil
		}
		m.bad.Fprintf(m.out, "Enter a number between %d and %d.\n", lo, hi)
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
