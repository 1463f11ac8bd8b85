package courses

import (
	"encoding/json"
	"time"
)

const (
	// Undefined is what an absent maker field or game style renders as.
	Undefined = "undefined"
	// NoTag is what an absent tag renders as.
	NoTag = "none"
)

// Opt is a string that may be absent from the listing markup.
type Opt struct {
	Value string
	Valid bool
}

func Some(value string) Opt {
	return Opt{Value: value, Valid: true}
}

// Or returns the value, or `sentinel` when the value is absent.
func (o Opt) Or(sentinel string) string {
	if !o.Valid {
		return sentinel
	}
	return o.Value
}

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyNormal      Difficulty = "normal"
	DifficultyExpert      Difficulty = "expert"
	DifficultySuperExpert Difficulty = "superExpert"
)

// Maker is the creator of a course.
type Maker struct {
	Login   Opt
	FaceImg Opt
	Flag    Opt
	Name    Opt
}

// Course is one listing of the search results.
type Course struct {
	ID           string
	Title        string
	Difficulty   Difficulty
	ClearRate    float64
	ThumbnailImg string
	Img          string
	GameStyle    Opt
	// CreatedAt is shifted to the site's display offset (UTC-3) and kept in UTC.
	CreatedAt time.Time
	Tag       Opt
	Stars     int64
	Plays     int64
	Shares    int64
	Clears    int64
	Attempts  int64
	Maker     Maker
}

// CreatedAtLayout renders timestamps with millisecond precision and a Z suffix.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

type makerJSON struct {
	Login   string `json:"login"`
	FaceImg string `json:"faceImg"`
	Flag    string `json:"flag"`
	Name    string `json:"name"`
}

type courseJSON struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Difficulty   string    `json:"difficulty"`
	ClearRate    float64   `json:"clearRate"`
	ThumbnailImg string    `json:"thumbnailImg"`
	Img          string    `json:"img"`
	GameStyle    string    `json:"gameStyle"`
	CreatedAt    string    `json:"createdAt"`
	Tag          string    `json:"tag"`
	Stared       int64     `json:"stared"`
	Played       int64     `json:"played"`
	Shared       int64     `json:"shared"`
	Clears       int64     `json:"clears"`
	Attempts     int64     `json:"attempts"`
	Maker        makerJSON `json:"maker"`
}

func (c Course) MarshalJSON() ([]byte, error) {
	return json.Marshal(courseJSON{
		ID:           c.ID,
		Title:        c.Title,
		Difficulty:   string(c.Difficulty),
		ClearRate:    c.ClearRate,
		ThumbnailImg: c.ThumbnailImg,
		Img:          c.Img,
		GameStyle:    c.GameStyle.Or(Undefined),
		CreatedAt:    c.CreatedAt.UTC().Format(CreatedAtLayout),
		Tag:          c.Tag.Or(NoTag),
		Stared:       c.Stars,
		Played:       c.Plays,
		Shared:       c.Shares,
		Clears:       c.Clears,
		Attempts:     c.Attempts,
		Maker: makerJSON{
			Login:   c.Maker.Login.Or(Undefined),
			FaceImg: c.Maker.FaceImg.Or(Undefined),
			Flag:    c.Maker.Flag.Or(Undefined),
			Name:    c.Maker.Name.Or(Undefined),
		},
	})
}
