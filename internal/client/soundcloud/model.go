package soundcloud

// Track represents metadata for a single track as returned by the API.
type Track struct {
	// ID is the unique track identifier.
	ID int64 `json:"id"`
	// CreatedAt is the creation timestamp as reported by the API.
	CreatedAt string `json:"created_at"`
	// UserID is the identifier of the uploading user.
	UserID int64 `json:"user_id"`
	// User is the uploading user's record.
	User User `json:"user"`
	// Title is the track name.
	Title string `json:"title"`
	// Permalink is the URL slug of the track.
	Permalink string `json:"permalink"`
	// PermalinkURL is the public web URL of the track.
	PermalinkURL string `json:"permalink_url"`
	// URI is the canonical API URL of the track.
	URI string `json:"uri"`
	// Sharing indicates the sharing mode ("public" or "private").
	Sharing string `json:"sharing"`
	// EmbeddableBy indicates who may embed the track.
	EmbeddableBy string `json:"embeddable_by"`
	// PurchaseURL is an optional external purchase link.
	PurchaseURL string `json:"purchase_url"`
	// ArtworkURL is an optional cover art URL.
	ArtworkURL string `json:"artwork_url"`
	// Description is an optional free-text description.
	Description string `json:"description"`
	// Duration is the track length in milliseconds.
	Duration int64 `json:"duration"`
	// Genre is an optional genre name.
	Genre string `json:"genre"`
	// Tags is an optional space-separated tag list.
	Tags string `json:"tag_list"`
	// LabelID is an optional label identifier.
	LabelID int64 `json:"label_id"`
	// LabelName is an optional label name.
	LabelName string `json:"label_name"`
	// Release is an optional release identifier.
	Release string `json:"release"`
	// Streamable indicates whether the track's audio can be streamed.
	Streamable bool `json:"streamable"`
	// Downloadable indicates whether the track's original file can be downloaded.
	Downloadable bool `json:"downloadable"`
	// State is the encoding state of the track.
	State string `json:"state"`
	// License is the license of the track.
	License string `json:"license"`
	// TrackType is an optional track type ("original", "remix", ...).
	TrackType string `json:"track_type"`
	// WaveformURL is the URL of the waveform image.
	WaveformURL string `json:"waveform_url"`
	// DownloadURL is the asset URL for downloading the original file, if downloadable.
	DownloadURL string `json:"download_url"`
	// StreamURL is the asset URL for streaming the transcoded audio, if streamable.
	StreamURL string `json:"stream_url"`
	// VideoURL is an optional external video link.
	VideoURL string `json:"video_url"`
	// BPM is an optional beats-per-minute value.
	BPM int64 `json:"bpm"`
	// Commentable indicates whether comments are enabled.
	Commentable bool `json:"commentable"`
	// ISRC is an optional international standard recording code.
	ISRC string `json:"isrc"`
	// KeySignature is an optional musical key.
	KeySignature string `json:"key_signature"`
	// CommentCount is the number of comments.
	CommentCount int64 `json:"comment_count"`
	// DownloadCount is the number of downloads.
	DownloadCount int64 `json:"download_count"`
	// PlaybackCount is the number of plays.
	PlaybackCount int64 `json:"playback_count"`
	// FavoritingsCount is the number of favorites.
	FavoritingsCount int64 `json:"favoritings_count"`
	// OriginalFormat is the file format of the uploaded asset.
	OriginalFormat string `json:"original_format"`
	// OriginalContentSize is the size of the uploaded asset in bytes.
	OriginalContentSize int64 `json:"original_content_size"`
	// CreatedWith is the app the track was uploaded with, if any.
	CreatedWith *App `json:"created_with"`
	// UserFavorite indicates whether the authenticated user favorited the track.
	UserFavorite bool `json:"user_favorite"`
	// LikesCount is the number of likes.
	LikesCount int64 `json:"likes_count"`
}

// Equal reports whether two track records describe the same track.
// Equality is defined solely by identifier equality: two records with the
// same ID are the same track regardless of other field differences.
func (t *Track) Equal(other *Track) bool {
	return other != nil && t.ID == other.ID
}

// User represents a user record embedded in tracks and comments.
// It has no independent lifecycle and is owned by the containing record.
type User struct {
	// ID is the unique user identifier.
	ID int64 `json:"id"`
	// Permalink is the URL slug of the user.
	Permalink string `json:"permalink"`
	// Username is the display name of the user.
	Username string `json:"username"`
	// URI is the canonical API URL of the user.
	URI string `json:"uri"`
	// PermalinkURL is the public web URL of the user.
	PermalinkURL string `json:"permalink_url"`
	// AvatarURL is the avatar image URL.
	AvatarURL string `json:"avatar_url"`
	// Country is an optional country name.
	Country string `json:"country"`
	// City is an optional city name.
	City string `json:"city"`
	// Description is an optional profile description.
	Description string `json:"description"`
	// DiscogsName is an optional Discogs account name. Note the hyphenated wire key.
	DiscogsName string `json:"discogs-name"`
	// MyspaceName is an optional Myspace account name. Note the hyphenated wire key.
	MyspaceName string `json:"myspace-name"`
	// Website is an optional website URL.
	Website string `json:"website"`
	// WebsiteTitle is an optional website title. Note the hyphenated wire key.
	WebsiteTitle string `json:"website-title"`
	// Online indicates whether the user is currently online.
	Online bool `json:"online"`
	// TrackCount is the number of public tracks.
	TrackCount int64 `json:"track_count"`
	// PlaylistCount is the number of public playlists.
	PlaylistCount int64 `json:"playlist_count"`
	// FollowersCount is the number of followers.
	FollowersCount int64 `json:"followers_count"`
	// FollowingsCount is the number of followed users.
	FollowingsCount int64 `json:"followings_count"`
	// PublicFavoritesCount is the number of public favorites.
	PublicFavoritesCount int64 `json:"public_favorites_count"`
}

// App represents the application a track was created with.
// It has no independent lifecycle and is owned by the containing record.
type App struct {
	// ID is the unique app identifier.
	ID int64 `json:"id"`
	// URI is the canonical API URL of the app.
	URI string `json:"uri"`
	// PermalinkURL is the public web URL of the app.
	PermalinkURL string `json:"permalink_url"`
	// ExternalURL is the app's external website.
	ExternalURL string `json:"external_url"`
	// Creator is an optional creator name.
	Creator string `json:"creator"`
}

// Comment represents a timed comment left on a track.
type Comment struct {
	// ID is the unique comment identifier.
	ID int64 `json:"id"`
	// URI is the canonical API URL of the comment.
	URI string `json:"uri"`
	// CreatedAt is the creation timestamp as reported by the API.
	CreatedAt string `json:"created_at"`
	// Body is the comment text.
	Body string `json:"body"`
	// Timestamp is the optional position in the track, in milliseconds.
	Timestamp int64 `json:"timestamp"`
	// UserID is the identifier of the commenting user.
	UserID int64 `json:"user_id"`
	// User is the commenting user's record.
	User User `json:"user"`
	// TrackID is the identifier of the commented track.
	TrackID int64 `json:"track_id"`
}
