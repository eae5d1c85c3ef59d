package content

// Step is one numbered instruction of the setup guide.
type Step struct {
	Number      int    `json:"number" yaml:"-"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Command     string `json:"command,omitempty" yaml:"command"`
	Last        bool   `json:"last" yaml:"-"`
}

// Callout is a highlighted note. HTML holds the sanitised markup of Body.
type Callout struct {
	Title string `json:"title" yaml:"title"`
	Body  string `json:"body" yaml:"body"`
	HTML  string `json:"html,omitempty" yaml:"-"`
}

// Guide is the installation walkthrough.
type Guide struct {
	Title   string  `json:"title" yaml:"title"`
	Intro   string  `json:"intro" yaml:"intro"`
	Steps   []Step  `json:"steps" yaml:"steps"`
	Callout Callout `json:"callout" yaml:"callout"`
}

// Node is one box of the architecture diagram.
type Node struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Icon        string `json:"icon" yaml:"icon"`
	Tone        string `json:"tone" yaml:"tone"`
}

// Tier is a row of the diagram. Consecutive tiers sharing Group are drawn
// inside the same boundary.
type Tier struct {
	Group string `json:"group,omitempty" yaml:"group"`
	Nodes []Node `json:"nodes" yaml:"nodes"`

	OpensGroup  bool `json:"opens_group,omitempty" yaml:"-"`
	ClosesGroup bool `json:"closes_group,omitempty" yaml:"-"`
}

// Architecture is the layered deployment diagram plus its notes.
type Architecture struct {
	Title string    `json:"title" yaml:"title"`
	Intro string    `json:"intro" yaml:"intro"`
	Tiers []Tier    `json:"tiers" yaml:"tiers"`
	Notes []Callout `json:"notes" yaml:"notes"`
}

// Generator holds the static copy around the script generator.
type Generator struct {
	Title      string    `json:"title" yaml:"title"`
	Intro      string    `json:"intro" yaml:"intro"`
	GPUWarning string    `json:"gpu_warning" yaml:"gpu_warning"`
	NextSteps  Callout   `json:"next_steps" yaml:"next_steps"`
	Prototype  Prototype `json:"prototype" yaml:"prototype"`
}

// Prototype holds the copy of the mobile mock-up.
type Prototype struct {
	AppName    string `json:"app_name" yaml:"app_name"`
	ModelBadge string `json:"model_badge" yaml:"model_badge"`
	Caption    string `json:"caption" yaml:"caption"`
}

// Catalog bundles all static copy.
type Catalog struct {
	Guide        Guide        `json:"guide"`
	Architecture Architecture `json:"architecture"`
	Generator    Generator    `json:"generator"`
}
