package api

// ActivityType is the type for an activity.
type ActivityType string

const (
	// ActivityUserAuthSignIn is the activity type for a user signing in.
	ActivityUserAuthSignIn ActivityType = "user.auth.signin"
	// ActivityUserAuthSignUp is the activity type for a user signing up.
	ActivityUserAuthSignUp ActivityType = "user.auth.signup"
	// ActivityUserPreferenceUpdate is the activity type for a preference change.
	ActivityUserPreferenceUpdate ActivityType = "user.preference.update"
	// ActivityAssetCreate is the activity type for an asset upload.
	ActivityAssetCreate ActivityType = "asset.create"
)

// ActivityLevel is the level of an activity.
type ActivityLevel string

const (
	// ActivityInfo is the activity level for informational activities.
	ActivityInfo ActivityLevel = "INFO"
	// ActivityWarn is the activity level for warnings.
	ActivityWarn ActivityLevel = "WARN"
	// ActivityError is the activity level for errors.
	ActivityError ActivityLevel = "ERROR"
)

type Activity struct {
	ID int `json:"id"`

	CreatorID int   `json:"creatorId"`
	CreatedTs int64 `json:"createdTs"`

	// Domain specific fields
	Type    ActivityType  `json:"type"`
	Level   ActivityLevel `json:"level"`
	Payload string        `json:"payload"`
}

type ActivityUserAuthSignInPayload struct {
	UserID int    `json:"userId"`
	IP     string `json:"ip"`
}

type ActivityUserAuthSignUpPayload struct {
	Username string `json:"username"`
	IP       string `json:"ip"`
}

type ActivityUserPreferenceUpdatePayload struct {
	UserID int    `json:"userId"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

type ActivityAssetCreatePayload struct {
	AssetID  int    `json:"assetId"`
	Filename string `json:"filename"`
}

type ActivityCreate struct {
	CreatorID int

	// Domain specific fields
	Type    ActivityType  `json:"type"`
	Level   ActivityLevel `json:"level"`
	Payload string        `json:"payload"`
}
