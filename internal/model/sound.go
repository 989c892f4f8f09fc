package model

// SoundID names an ambient loop
type SoundID string

const (
	SoundRain SoundID = "rain"
	SoundCafe SoundID = "cafe"
	SoundJazz SoundID = "jazz"
)

// Sound is an ambient loop the mixer can toggle
type Sound struct {
	ID    SoundID `json:"id"`
	Label string  `json:"label"`
	Emoji string  `json:"emoji"`
	URL   string  `json:"url"`
}

// Sounds is the fixed ambient catalogue, in display order
var Sounds = []Sound{
	{ID: SoundRain, Label: "Soft Rain", Emoji: "🌧️", URL: "https://www.soundjay.com/nature/rain-01.mp3"},
	{ID: SoundCafe, Label: "Coffee Shop", Emoji: "☕", URL: "https://www.soundjay.com/misc/sounds/coffee-shop-1.mp3"},
	{ID: SoundJazz, Label: "Chill Jazz", Emoji: "🎷", URL: "https://www.soundjay.com/button/sounds/button-1.mp3"},
}

// LookupSound returns the catalogue entry for id
func LookupSound(id SoundID) (Sound, bool) {
	for _, s := range Sounds {
		if s.ID == id {
			return s, true
		}
	}
	return Sound{}, false
}
