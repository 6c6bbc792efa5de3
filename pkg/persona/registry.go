package persona

// DefaultID is the persona whose canned text is used when an id does not resolve.
const DefaultID = "gandhi"

// VoiceProfile holds the text-to-speech settings for a persona.
type VoiceProfile struct {
	VoiceId         string
	Stability       float64
	SimilarityBoost float64
	Style           float64
	UseSpeakerBoost bool
}

// Persona is a historical figure the user can talk to.
type Persona struct {
	Id          string
	Name        string
	Title       string
	Era         string
	Description string
	Expertise   []string
	Greeting    string

	// Instruction is the system prompt describing voice and knowledge.
	Instruction string

	// Fallbacks are used when no completion provider produced a reply.
	Fallbacks []string

	// ShortDefault replaces generated replies that are too short to be real answers.
	ShortDefault string

	Voice VoiceProfile
}

type Registry struct {
	order    []string
	personas map[string]Persona
}

func NewRegistry(personas ...Persona) *Registry {
	r := &Registry{
		personas: make(map[string]Persona, len(personas)),
	}
	for _, p := range personas {
		if _, exists := r.personas[p.Id]; !exists {
			r.order = append(r.order, p.Id)
		}
		r.personas[p.Id] = p
	}
	return r
}

// NewDefaultRegistry returns the registry of built-in legends.
func NewDefaultRegistry() *Registry {
	return NewRegistry(builtinLegends()...)
}

func (r *Registry) Lookup(id string) (Persona, bool) {
	p, ok := r.personas[id]
	return p, ok
}

// Default returns the default persona. It panics if the registry was built without it.
func (r *Registry) Default() Persona {
	p, ok := r.personas[DefaultID]
	if !ok {
		panic("persona: default persona " + DefaultID + " is not registered")
	}
	return p
}

// Resolve returns the persona for id or the default persona.
func (r *Registry) Resolve(id string) Persona {
	if p, ok := r.personas[id]; ok {
		return p
	}
	return r.Default()
}

// All returns personas in registration order.
func (r *Registry) All() []Persona {
	out := make([]Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.personas[id])
	}
	return out
}
