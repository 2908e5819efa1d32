package gem

import "time"

type VoteType string

const (
	VoteUp   VoteType = "UPVOTE"
	VoteDown VoteType = "DOWNVOTE"
)

func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

type MediaType string

const (
	MediaImage MediaType = "IMAGE"
	MediaVideo MediaType = "VIDEO"
)

func (t MediaType) Valid() bool {
	return t == MediaImage || t == MediaVideo
}

type GemType string

const (
	TypeLandmark      GemType = "LANDMARK"
	TypeFood          GemType = "FOOD"
	TypeNature        GemType = "NATURE"
	TypeCulture       GemType = "CULTURE"
	TypeEntertainment GemType = "ENTERTAINMENT"
	TypeOther         GemType = "OTHER"
)

func (t GemType) Valid() bool {
	switch t {
	case TypeLandmark, TypeFood, TypeNature, TypeCulture, TypeEntertainment, TypeOther:
		return true
	}
	return false
}

type Gem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        GemType   `json:"type"`
	Lat         float64   `json:"lat"`
	Lng         float64   `json:"lng"`
	AuthorID    string    `json:"author_id"`
	CityCode    string    `json:"city_code"`
	Author      Author    `json:"author"`
	Media       []Media   `json:"media"`
	Votes       []Vote    `json:"votes"`
	CreatedAt   time.Time `json:"created_at"`
}

type Media struct {
	ID        string    `json:"id"`
	GemID     string    `json:"gem_id"`
	URI       string    `json:"uri"`
	Type      MediaType `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

type Vote struct {
	ID        string    `json:"id"`
	GemID     string    `json:"gem_id"`
	UserID    string    `json:"user_id"`
	Type      VoteType  `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// Author is the read-only user projection attached to a gem for display.
type Author struct {
	Username       string `json:"username"`
	ProfilePicture string `json:"profile_picture"`
}

// ReviewDetails is derived from a gem's current vote set on every read,
// never stored or cached.
type ReviewDetails struct {
	Count            int     `json:"count"`
	UpvotePercentage float64 `json:"upvotePercentage"`
}

type AuthorView struct {
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profilePictureUrl"`
}

type MediaView struct {
	URI  string    `json:"uri"`
	Type MediaType `json:"type"`
}

// GemView is the response projection of a gem produced by the aggregator.
type GemView struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Type          GemType       `json:"type"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	Author        AuthorView    `json:"author"`
	Media         []MediaView   `json:"media"`
	ReviewDetails ReviewDetails `json:"reviewDetails"`
}

type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

type CreateGemInput struct {
	UserID      string       `json:"userId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        GemType      `json:"type"`
	Location    Coordinate   `json:"location"`
	Media       []MediaInput `json:"media"`
}

type MediaInput struct {
	URI  string    `json:"uri"`
	Type MediaType `json:"type"`
}
