package discord

import (
	"fmt"
	"slices"
	"strings"

	"github.com/mitchellh/go-ps"
)

// clientNames are executable names of Discord builds and Vencord-based clients,
// lower case and without extension.
var clientNames = []string{
	"discord",
	"discordcanary",
	"discordptb",
	"vesktop",
	"equibop",
	"legcord",
}

// IsClient reports whether an executable name belongs to a Discord client.
func IsClient(executable string) bool {
	name := strings.ToLower(executable)
	name = strings.TrimSuffix(name, ".exe")
	return slices.Contains(clientNames, name)
}

// RunningClients returns the distinct executable names of running Discord
// clients, sorted.
func RunningClients() ([]string, error) {
	processes, err := ps.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var names []string
	for _, p := range processes {
		if IsClient(p.Executable()) && !slices.Contains(names, p.Executable()) {
			names = append(names, p.Executable())
		}
	}
	slices.Sort(names)

	return names, nil
}
