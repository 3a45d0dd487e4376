package remote

type EmptyResponse struct {
}

type SetModeRequest struct {
	Mode uint8
}

type ShowPNGRequest struct {
	Buffer uint8
	PNG    []byte
}

type ShowTextRequest struct {
	Text      string
	Width     int
	Height    int
	Antialias bool
	FontSize  int
	Font      string
}
