package api

// Asset is an uploaded file, in practice a profile avatar. The blob lives in
// the database, on local disk, or behind an external link depending on the
// configured storage backend.
type Asset struct {
	ID int `json:"id"`

	CreatorID int   `json:"creatorId"`
	CreatedTs int64 `json:"createdTs"`
	UpdatedTs int64 `json:"updatedTs"`

	// Domain specific fields
	Filename     string `json:"filename"`
	Blob         []byte `json:"-"`
	InternalPath string `json:"-"`
	ExternalLink string `json:"externalLink"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	PublicID     string `json:"publicId"`
}

type AssetCreate struct {
	CreatorID int

	// Domain specific fields
	Filename     string `json:"filename"`
	Blob         []byte `json:"-"`
	InternalPath string `json:"internalPath"`
	ExternalLink string `json:"externalLink"`
	Type         string `json:"type"`
	Size         int64  `json:"size"`
	PublicID     string `json:"publicId"`
}

type AssetFind struct {
	ID        *int    `json:"id"`
	CreatorID *int    `json:"creatorId"`
	PublicID  *string `json:"publicId"`

	Limit  *int
	Offset *int
}

type AssetDelete struct {
	ID int `json:"id"`
}
