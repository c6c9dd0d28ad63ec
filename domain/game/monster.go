package game

import (
	"fmt"
	"math/rand/v2"
	"net/url"
)

// Monster is a static catalog entry. Picking one is purely cosmetic.
type Monster struct {
	ID          int
	Name        string
	Description string
	Tier        Tier
	ImageURL    string
	BaseReward  uint64
}

const (
	imageBase  = "https://image.pollinations.ai/prompt"
	imageStyle = "anime style, digital fantasy art, 2d illustration, cel shaded, best quality"
)

func imageURL(prompt string, seed int) string {
	return fmt.Sprintf("%s/%s?width=512&height=512&seed=%d&nologo=true&model=turbo",
		imageBase, url.PathEscape(prompt+", "+imageStyle), seed)
}

func monster(id int, tier Tier, name, description, prompt string) Monster {
	return Monster{
		ID:          id,
		Name:        name,
		Description: description,
		Tier:        tier,
		ImageURL:    imageURL(prompt, id),
		BaseReward:  tier.BaseReward(),
	}
}

var catalog = []Monster{
	monster(0, Tier1, "Mutant Slime", "green, translucent, jelly-like, bones inside",
		"Green slime monster, translucent jelly body, visible white skeleton inside, cute rpg enemy"),
	monster(1, Tier1, "Forest Goblin", "green skin, pointy ears, small, ragged clothes",
		"Forest Goblin, green skin, pointy ears, small stature, wearing leather rags, holding wooden club, forest background"),
	monster(2, Tier1, "Giant Venom Spider", "eight legs, black, purple venom, many eyes",
		"Giant spider, black chitin armor, purple glowing eyes, dripping poison, spider web background"),
	monster(3, Tier1, "Cursed Skeleton", "white bones, blue eye flames, broken shield",
		"Skeleton warrior, white bones, blue magical flame eyes, holding rusted sword and broken shield, dark dungeon"),

	monster(4, Tier2, "Raging Werewolf", "wolf head, upright, full moon, claws",
		"Werewolf warrior, wolf head human body, sharp claws, standing pose, full moon night background"),
	monster(5, Tier2, "Brute Orc", "huge green muscles, tusks, great axe",
		"Orc barbarian, massive green muscles, large tusks, holding battle axe, war paint, aggressive"),
	monster(6, Tier2, "Harpy", "female face, bird body, wings, talons",
		"Harpy monster, female human face, bird body with feathers, large wings, sharp talons, mountain peak"),
	monster(7, Tier2, "Labyrinth Minotaur", "bull head, nose ring, totem pillar",
		"Minotaur warrior, bull head, nose ring, strong human body, holding totem pillar weapon, stone labyrinth"),

	monster(8, Tier3, "Iron Golem", "all metal, gears, steampunk, red eyes",
		"Iron Golem, steampunk robot, brass and iron gears, glowing red eyes, metallic armor, steam venting"),
	monster(9, Tier3, "Deep Sea Kraken", "octopus tentacles, suckers, slimy, deep blue",
		"Deep sea Kraken, giant octopus monster, blue ocean water, tentacles, suction cups, bioluminescence"),
	monster(10, Tier3, "Necromancer", "black robe, skull face, green spell light",
		"Evil Necromancer, wearing dark hooded robes, skeletal face, casting green arcane magic, dark aura"),
	monster(11, Tier3, "Night Vampire", "noble attire, pale skin, blood on lips",
		"Vampire Lord, victorian noble suit, pale skin, red eyes, blood on lips, gothic castle background"),

	monster(12, Tier4, "Purgatory Fire Elemental", "lava body, obsidian armor, flames",
		"Fire Elemental Boss, body made of lava, floating obsidian armor, raging fire flames, inferno background"),
	monster(13, Tier4, "Abyssal Dragon", "black scales, giant wings, purple fire",
		"Abyssal Dragon, black scales, giant wings, breathing purple fire, dark apocalypse background"),
	monster(14, Tier4, "Fallen Archangel", "black wings, halo, dark holy sword",
		"Fallen Angel Boss, black feathered wings, dark corrupted halo, holding dark energy sword, dramatic lighting"),
	monster(15, Tier4, "Void Sovereign", "starry skin, many eyes, tentacles",
		"Void Eldritch Horror, cosmic star texture skin, many eyes, tentacles, space background, abstract monster"),
}

// Catalog returns a copy of every monster.
func Catalog() []Monster {
	out := make([]Monster, len(catalog))
	copy(out, catalog)
	return out
}

// MonstersByTier returns the catalog entries of tier t in catalog order.
func MonstersByTier(t Tier) []Monster {
	var out []Monster
	for _, m := range catalog {
		if m.Tier == t {
			out = append(out, m)
		}
	}
	return out
}

// PickMonster chooses a display monster of tier t. When r is nil the global
// source is used. The pick has no bearing on the fight outcome.
func PickMonster(t Tier, r *rand.Rand) (Monster, error) {
	monsters := MonstersByTier(t)
	if len(monsters) == 0 {
		return Monster{}, fmt.Errorf("%w: %d", ErrInvalidTier, t)
	}
	var i int
	if r == nil {
		i = rand.IntN(len(monsters))
	} else {
		i = r.IntN(len(monsters))
	}
	return monsters[i], nil
}
