package pkg_mgr

import (
	"fmt"
	"strings"
)

// Manager identifies a supported package manager. The set is closed; values
// are compared by value and persisted by their lower-case name.
type Manager uint8

const (
	Pacman Manager = iota + 1
	Paru
	Yay
	Apt
	Dnf
	Zypper
	Apk
	Flatpak
)

// Family selects the output parser for a manager.
type Family uint8

const (
	FamilyArch Family = iota + 1
	FamilyApt
	FamilyDnf
	FamilyZypper
	FamilyApk
	FamilyFlatpak
)

// Command is an executable plus its arguments.
type Command struct {
	Name string
	Args []string
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// IsZero reports whether the command is unset.
func (c Command) IsZero() bool {
	return c.Name == ""
}

// ParseManager resolves a manager from its name, case-insensitively.
func ParseManager(s string) (Manager, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, m := range priority {
		if catalog[m].name == name {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown package manager %q", s)
}

// Valid reports whether m is one of the supported managers.
func (m Manager) Valid() bool {
	_, ok := catalog[m]
	return ok
}

// Name returns the lower-case identifier (e.g., "paru", "apt").
func (m Manager) Name() string {
	if e, ok := catalog[m]; ok {
		return e.name
	}
	return fmt.Sprintf("manager(%d)", uint8(m))
}

func (m Manager) String() string {
	return m.Name()
}

// Binary is the executable probed on PATH to decide availability.
func (m Manager) Binary() string {
	return catalog[m].binary
}

// SupportsAUR is true only for the AUR helpers.
func (m Manager) SupportsAUR() bool {
	return catalog[m].aur
}

// Family returns the parser family for m.
func (m Manager) Family() Family {
	return catalog[m].family
}

// OfficialCheck returns the command that lists official-repository updates.
func (m Manager) OfficialCheck() Command {
	return catalog[m].official.clone()
}

// AURCheck returns the AUR listing command; ok is false when unsupported.
func (m Manager) AURCheck() (Command, bool) {
	e := catalog[m]
	if !e.aur {
		return Command{}, false
	}
	return e.aurCheck.clone(), true
}

// SystemUpdateCommand is the shell command a user runs to upgrade everything.
// It is handed to a terminal and never executed by the checker.
func (m Manager) SystemUpdateCommand() string {
	return catalog[m].upgrade
}

func (m Manager) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("invalid package manager %d", uint8(m))
	}
	return []byte(m.Name()), nil
}

func (m *Manager) UnmarshalText(text []byte) error {
	parsed, err := ParseManager(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (c Command) clone() Command {
	return Command{Name: c.Name, Args: append([]string(nil), c.Args...)}
}
