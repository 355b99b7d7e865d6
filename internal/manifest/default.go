package manifest

// Action names of the built-in commands.
const (
	ActionNotify       = "notify"
	ActionNotifyFromKV = "notify_from_kv"
	ActionDialogFromKV = "dialog_from_kv"
	ActionIframe       = "iframe"
	ActionWithError    = "with_error"
	ActionURL          = "url"
)

// CustomType1 is the node type the demo commands are attached to.
const CustomType1 = "CustomType1"

// Identity is the configurable part of the registration document.
type Identity struct {
	Name        string
	Description string
	BaseURL     string
	Email       string
}

// Default returns the declaration of the built-in commands.
func Default(id Identity) Extension {
	return Extension{
		Name:        id.Name,
		Description: id.Description,
		BaseURL:     id.BaseURL,
		Email:       id.Email,
		Commands: []Command{
			{
				Name:        "Send notify",
				Type:        CommandType{Action: ActionNotify},
				Description: "just notify",
			},
			{
				Name:        "Send notify using KV",
				Type:        CommandType{Action: ActionNotifyFromKV},
				Description: "just notify but with KV",
				ShowRules:   []ShowRule{{AllNodes: true}},
			},
			{
				Name:        "Open dialog using KV",
				Type:        CommandType{Action: ActionDialogFromKV},
				Description: "open dialog through KV",
				ShowRules:   []ShowRule{{AllNodes: true}},
			},
			{
				Name:        "Open url",
				Type:        CommandType{Action: ActionURL},
				Description: "open url in new tab",
				ShowRules:   []ShowRule{{SelfType: CustomType1}},
			},
			{
				Name:        "Command-url",
				Type:        CommandType{URL: id.BaseURL + "/"},
				Description: "open url in new tab",
				ShowRules:   []ShowRule{{SelfType: CustomType1}},
			},
			{
				Name:        "Open IFrame",
				Type:        CommandType{Action: ActionIframe},
				Description: "just open iframe",
				ShowRules:   []ShowRule{{DescendantOfType: CustomType1}},
			},
			{
				Name:        "Throw error",
				Type:        CommandType{Action: ActionWithError},
				Description: "show notification about error",
				ShowRules:   []ShowRule{{Root: true}},
			},
		},
		RequiredTypes: []NodeType{
			{
				Name: CustomType1,
				Properties: []Property{
					{Name: "Field1", Category: "TEXT", Argument: "TEXT_SIMPLE"},
				},
			},
		},
	}
}
