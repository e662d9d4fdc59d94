package model

// Constant is a file-scoped key/value metadata pair discovered in a file
// header, e.g. "Title = Wheat trial". Values are text at parse time; numeric
// interpretation happens only in the coercion pass, after merging. Met-file
// constants may carry a unit annotation ("tav = 19.09 (oC)").
type Constant struct {
	Key   string
	Value string
	Unit  string
}
