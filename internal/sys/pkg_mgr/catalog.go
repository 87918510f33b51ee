package pkg_mgr

type entry struct {
	name     string
	binary   string
	family   Family
	aur      bool
	official Command
	aurCheck Command
	upgrade  string
}

var checkupdates = Command{Name: "checkupdates"}

var catalog = map[Manager]entry{
	Pacman: {
		name: "pacman", binary: "pacman", family: FamilyArch,
		official: checkupdates,
		upgrade:  "sudo pacman -Syu",
	},
	Paru: {
		name: "paru", binary: "paru", family: FamilyArch, aur: true,
		official: checkupdates,
		aurCheck: Command{Name: "paru", Args: []string{"-Qu", "--aur"}},
		upgrade:  "paru -Syu",
	},
	Yay: {
		name: "yay", binary: "yay", family: FamilyArch, aur: true,
		official: checkupdates,
		aurCheck: Command{Name: "yay", Args: []string{"-Qu", "--aur"}},
		upgrade:  "yay -Syu",
	},
	Apt: {
		name: "apt", binary: "apt", family: FamilyApt,
		official: Command{Name: "apt", Args: []string{"list", "--upgradable"}},
		upgrade:  "sudo apt update && sudo apt upgrade",
	},
	Dnf: {
		name: "dnf", binary: "dnf", family: FamilyDnf,
		official: Command{Name: "dnf", Args: []string{"check-update", "-q"}},
		upgrade:  "sudo dnf upgrade",
	},
	Zypper: {
		name: "zypper", binary: "zypper", family: FamilyZypper,
		official: Command{Name: "zypper", Args: []string{"list-updates"}},
		upgrade:  "sudo zypper update",
	},
	Apk: {
		name: "apk", binary: "apk", family: FamilyApk,
		official: Command{Name: "apk", Args: []string{"-u", "list"}},
		upgrade:  "sudo apk upgrade",
	},
	Flatpak: {
		name: "flatpak", binary: "flatpak", family: FamilyFlatpak,
		official: Command{Name: "flatpak", Args: []string{"remote-ls", "--updates"}},
		upgrade:  "flatpak update",
	},
}

// AUR helpers first, then native managers, then universal packagers.
var priority = []Manager{Paru, Yay, Pacman, Apt, Dnf, Zypper, Apk, Flatpak}

// All returns every supported manager in detection priority order.
func All() []Manager {
	return append([]Manager(nil), priority...)
}
