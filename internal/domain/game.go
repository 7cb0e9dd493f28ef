package domain

import "time"

// Item kinds a gamer can hold.
const (
	ItemBooster   = "booster"
	ItemCleaner   = "cleaner"
	ItemSprinkler = "sprinkler"
)

var ItemKinds = []string{ItemBooster, ItemCleaner, ItemSprinkler}

func ValidItemKind(kind string) bool {
	for _, k := range ItemKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Planets and the stock each one starts with before the first daily redraw.
var PlanetSeed = map[string]int{
	"desert":     3,
	"ocean":      4,
	"forest":     3,
	"reed":       4,
	"waterfall":  3,
	"grape":      3,
	"apple":      4,
	"pineapple":  3,
	"banana":     4,
	"strawberry": 3,
}

func ValidPlanet(name string) bool {
	_, ok := PlanetSeed[name]
	return ok
}

const MaxDustStage = 3

// Game is the gamification sub-record embedded in the user document.
type Game struct {
	IsInitial     bool           `bson:"isInitial" json:"isInitial"`
	LoggedInAt    time.Time      `bson:"loggedInAt" json:"loggedInAt"`
	Score         int            `bson:"score" json:"score"`
	ItemHave      map[string]int `bson:"itemHave" json:"itemHave"`
	Skins         []string       `bson:"skins" json:"skins"`
	DustStage     int            `bson:"dustStage" json:"dustStage"`
	IsWithered    bool           `bson:"isWithered" json:"isWithered"`
	ItemUpdatedAt time.Time      `bson:"itemUpdatedAt" json:"itemUpdatedAt"`
	ItemLeft      map[string]int `bson:"itemLeft" json:"itemLeft"`
}

// NewGame is the state every fresh account starts from.
func NewGame(now time.Time) Game {
	have := make(map[string]int, len(ItemKinds))
	for _, k := range ItemKinds {
		have[k] = 0
	}
	left := make(map[string]int, len(PlanetSeed))
	for p, n := range PlanetSeed {
		left[p] = n
	}
	return Game{
		IsInitial:     true,
		LoggedInAt:    now,
		ItemHave:      have,
		Skins:         []string{"base"},
		ItemUpdatedAt: now,
		ItemLeft:      left,
	}
}
