package component

// Script attaches a tengo prop script. Params are passed in read-only and
// Outputs holds what the last run exported through `out`.
type Script struct {
	Path    string
	Params  map[string]any
	Outputs map[string]any
}

var ScriptComponent = NewComponent[Script]()

// Emission is a glowing material toggled by scripts.
type Emission struct {
	Enabled bool
}

var EmissionComponent = NewComponent[Emission]()
