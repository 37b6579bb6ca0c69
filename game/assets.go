package game

import (
	"github.com/lixenwraith/tilerun/core"
	"github.com/lixenwraith/tilerun/level"
	"github.com/lixenwraith/tilerun/render"
)

// Sprites are the visuals of the demo types, two cells wide per tile
type Sprites struct {
	Player core.Visual
	Enemy  core.Visual
	Coin   core.Visual
}

// DefaultSprites returns the built-in ASCII art
func DefaultSprites() Sprites {
	return Sprites{
		Player: render.NewSprite("player", [][]string{{"@>"}, {"@}"}}, 0, 0, "#ffd866"),
		Enemy:  render.NewSprite("enemy", [][]string{{"<E"}, {"<e"}}, 0, 0, "#ff6188"),
		Coin:   render.NewSprite("coin", [][]string{{"()"}, {"||"}, {"()"}, {"<>"}}, 0, 0, "#fce566"),
	}
}

// Sounds played by the demo types, nil entries stay silent
type Sounds struct {
	Jump  core.Sound
	Coin  core.Sound
	Stomp core.Sound
	Hurt  core.Sound
}

// DefaultLevel is the built-in map
var DefaultLevel = level.Level{
	Name: "meadow",
	Rows: level.Parse(`
#                                                    #
#                                    $ $ $           #
#                 $ $              #######           #
#               #######                        E     #
#     @                    E              ########## #
#   #####           ###########     $                #
#             $                   #####      $ $     #
#    E     #######       $ $                #####    #
######################################################
`),
}
