package sim

// Tile identifies what occupies a map cell.
type Tile byte

const (
	TileInvalid Tile = 0
	TileGrass   Tile = ' '
	TileStone   Tile = '#'
)

// Map is a row-major grid of tiles, immutable after load. Stone tiles
// are static AABBs for collision and raycasts; everything else is
// walkable.
type Map struct {
	Data     []Tile
	Width    int
	Height   int
	TileSize float64
	Origin   Vec2
}

// Coord converts a world-space position to integer tile coordinates.
func (m *Map) Coord(at Vec2) (i, j int) {
	i = int((at.X - m.Origin.X) / m.TileSize)
	j = int((at.Y - m.Origin.Y) / m.TileSize)
	return
}

// InBounds reports whether tile coordinates (i, j) fall within the map.
func (m *Map) InBounds(i, j int) bool {
	return i >= 0 && i < m.Width && j >= 0 && j < m.Height
}

// At returns the tile at world-space position at, or TileInvalid if
// the position falls outside the map.
func (m *Map) At(at Vec2) Tile {
	i, j := m.Coord(at)
	if !m.InBounds(i, j) || j*m.Width+i >= len(m.Data) || i < 0 || j < 0 {
		return TileInvalid
	}
	return m.Data[j*m.Width+i]
}

// TileOrigin returns the world-space minimum corner of the tile
// containing at.
func (m *Map) TileOrigin(at Vec2) Vec2 {
	i, j := m.Coord(at)
	return Vec2{
		X: m.Origin.X + float64(i)*m.TileSize,
		Y: m.Origin.Y + float64(j)*m.TileSize,
	}
}

// defaultArenaRows is the bordered 30x30 arena adopted verbatim from
// original_source's game.h (walls ringing an open floor with a small
// number of interior rooms).
var defaultArenaRows = []string{
	"##############################",
	"#                            #",
	"#                            #",
	"#    ####################    #",
	"#    #                  #    #",
	"#    ####            ####    #",
	"#                            #",
	"#                            #",
	"########              ########",
	"#                            #",
	"#  #                      #  #",
	"#  #                      #  #",
	"#                            #",
	"#####  ################  #####",
	"#                            #",
	"#                            #",
	"#                            #",
	"#                            #",
	"#  ##                    ##  #",
	"#                            #",
	"#                            #",
	"#                            #",
	"#            ####            #",
	"#                            #",
	"#            ####            #",
	"#                            #",
	"#                            #",
	"#                            #",
	"#                            #",
	"##############################",
}

// NewDefaultMap builds the compiled-in default arena.
func NewDefaultMap() *Map {
	width := len(defaultArenaRows[0])
	height := len(defaultArenaRows)
	data := make([]Tile, 0, width*height)
	for _, row := range defaultArenaRows {
		for _, c := range row {
			data = append(data, Tile(c))
		}
	}
	return &Map{
		Data:     data,
		Width:    width,
		Height:   height,
		TileSize: 1.0,
		Origin:   Vec2{0, 0},
	}
}
