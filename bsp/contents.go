package bsp

// Would be great to type these but positive values are node numbers or so....
const (
	_ = -iota
	CONTENTS_EMPTY
	CONTENTS_SOLID
	CONTENTS_WATER
	CONTENTS_SLIME
	CONTENTS_LAVA
	CONTENTS_SKY
	CONTENTS_ORIGIN
	CONTENTS_CLIP
	CONTENTS_CURRENT_0
	CONTENTS_CURRENT_90
	CONTENTS_CURRENT_180
	CONTENTS_CURRENT_270
	CONTENTS_CURRENT_UP
	CONTENTS_CURRENT_DOWN
	CONTENTS_TRANSLUCENT
	CONTENTS_LADDER
)

// IsCurrent reports whether c is one of the six push volumes.
func IsCurrent(c int) bool {
	return c <= CONTENTS_CURRENT_0 && c >= CONTENTS_CURRENT_DOWN
}

