// Package manifest describes the extension to the host: its identity, the
// commands it offers and the node types it needs. The document is sent once
// at registration; the server also uses it to check that every declared
// action has a handler.
package manifest

// Extension is the registration document.
type Extension struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	// BaseURL is where the host reaches action commands.
	BaseURL       string     `json:"baseUrl"`
	Email         string     `json:"email"`
	Commands      []Command  `json:"commands"`
	RequiredTypes []NodeType `json:"requiredTypes"`
}

// Command is one entry of the host's command menu.
type Command struct {
	Name        string      `json:"name"`
	Type        CommandType `json:"type"`
	Description string      `json:"description"`
	ShowRules   []ShowRule  `json:"showRules,omitempty"`
}

// CommandType selects how the host runs a command: Action posts to
// /api/commands/{Action} on the extension, URL opens a link directly.
// Exactly one is set.
type CommandType struct {
	Action string `json:"action,omitempty"`
	URL    string `json:"url,omitempty"`
}

// ShowRule limits which nodes show a command.
type ShowRule struct {
	AllNodes         bool   `json:"allNodes,omitempty"`
	SelfType         string `json:"selfType,omitempty"`
	DescendantOfType string `json:"descendantOfType,omitempty"`
	Root             bool   `json:"root,omitempty"`
}

// NodeType is a node type the extension requires on the map.
type NodeType struct {
	Name       string     `json:"name"`
	Properties []Property `json:"properties"`
}

// Property is a typed field of a NodeType.
type Property struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Argument string `json:"argument"`
}

// ActionNames returns the action names declared by e, in declaration order.
func (e Extension) ActionNames() []string {
	var names []string
	for _, c := range e.Commands {
		if c.Type.Action != "" {
			names = append(names, c.Type.Action)
		}
	}
	return names
}
