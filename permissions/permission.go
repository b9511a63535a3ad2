package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed to run one command path. An empty role
// list admits every signed-in operator; Skip needs no session at all.
type Permission struct {
	Roles   []string `json:"roles"`
	Command string   `json:"command"`
	Skip    bool     `json:"skip"`
}

type PermissionData struct {
	Commands []Permission `json:"commands"`
	Skip     bool         `json:"skip"`
}

// FindPermissions returns the entry of the longest configured prefix of path,
// so "vehicles add" falls back to "vehicles".
func (r *PermissionData) FindPermissions(path string) Permission {
	for current := strings.TrimSpace(path); current != ""; {
		idx := slices.IndexFunc(r.Commands, func(p Permission) bool {
			return p.Command == current
		})

		if idx != -1 {
			return r.Commands[idx]
		}

		cut := strings.LastIndexByte(current, ' ')
		if cut == -1 {
			break
		}

		current = current[:cut]
	}

	return Permission{Command: path}
}

func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Debug().Int("commands", len(permissions.Commands)).Msg("Loaded embedded permissions")

	return &permissions
}
