// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package workload

// Operation is a single benchmark request: a kind tag plus the typed
// parameters that kind requires. Implementations are plain data and are
// read-only once handed to the adapter layer.
type Operation interface {
	Kind() Kind
}

// Result marks the typed answer shapes produced for operations. Each
// result type reports the operation kind it answers.
type Result interface {
	Kind() Kind
}

// Complex1 finds friends of a person with a given first name.
type Complex1 struct {
	PersonID  int64  `json:"person_id"`
	FirstName string `json:"first_name"`
	Limit     int    `json:"limit"`
}

// Complex2 lists recent messages by a person's friends up to a date.
type Complex2 struct {
	PersonID int64 `json:"person_id"`
	MaxDate  int64 `json:"max_date"`
	Limit    int   `json:"limit"`
}

// Complex3 counts messages friends posted from two countries in a window.
type Complex3 struct {
	PersonID     int64  `json:"person_id"`
	CountryX     string `json:"country_x"`
	CountryY     string `json:"country_y"`
	StartDate    int64  `json:"start_date"`
	DurationDays int    `json:"duration_days"`
	Limit        int    `json:"limit"`
}

// Complex4 finds new topics friends posted about in a window.
type Complex4 struct {
	PersonID     int64 `json:"person_id"`
	StartDate    int64 `json:"start_date"`
	DurationDays int   `json:"duration_days"`
	Limit        int   `json:"limit"`
}

// Complex5 finds forums friends joined after a date, by friend post count.
type Complex5 struct {
	PersonID int64 `json:"person_id"`
	MinDate  int64 `json:"min_date"`
	Limit    int   `json:"limit"`
}

// Complex6 finds tags co-occurring with a given tag on friends' posts.
type Complex6 struct {
	PersonID int64  `json:"person_id"`
	TagName  string `json:"tag_name"`
	Limit    int    `json:"limit"`
}

// Complex7 lists the most recent likers of a person's messages.
type Complex7 struct {
	PersonID int64 `json:"person_id"`
	Limit    int   `json:"limit"`
}

// Complex8 lists the most recent replies to a person's messages.
type Complex8 struct {
	PersonID int64 `json:"person_id"`
	Limit    int   `json:"limit"`
}

// Complex9 lists recent messages by friends and friends-of-friends.
type Complex9 struct {
	PersonID int64 `json:"person_id"`
	MaxDate  int64 `json:"max_date"`
	Limit    int   `json:"limit"`
}

// Complex10 recommends friends-of-friends by common interests, for
// people born around a given month.
type Complex10 struct {
	PersonID int64 `json:"person_id"`
	Month    int   `json:"month"`
	Limit    int   `json:"limit"`
}

// Complex11 finds friends employed in a country before a given year.
type Complex11 struct {
	PersonID     int64  `json:"person_id"`
	CountryName  string `json:"country_name"`
	WorkFromYear int    `json:"work_from_year"`
	Limit        int    `json:"limit"`
}

// Complex12 finds friends replying to posts about a tag class.
type Complex12 struct {
	PersonID     int64  `json:"person_id"`
	TagClassName string `json:"tag_class_name"`
	Limit        int    `json:"limit"`
}

// Complex13 computes the shortest friendship path length between two
// people. Singleton result.
type Complex13 struct {
	Person1ID int64 `json:"person1_id"`
	Person2ID int64 `json:"person2_id"`
}

// Complex14 enumerates weighted friendship paths between two people.
type Complex14 struct {
	Person1ID int64 `json:"person1_id"`
	Person2ID int64 `json:"person2_id"`
}

// Short reads. Present for workload decoding; no backend registers
// handlers for them, so dispatch reports them unregistered.

// Short1 fetches a person's profile.
type Short1 struct {
	PersonID int64 `json:"person_id"`
}

// Short2 lists a person's most recent messages.
type Short2 struct {
	PersonID int64 `json:"person_id"`
	Limit    int   `json:"limit"`
}

// Short3 lists a person's friends.
type Short3 struct {
	PersonID int64 `json:"person_id"`
}

// Short4 fetches the content of a message.
type Short4 struct {
	MessageID int64 `json:"message_id"`
}

// Short5 fetches the creator of a message.
type Short5 struct {
	MessageID int64 `json:"message_id"`
}

// Short6 fetches the forum a message belongs to.
type Short6 struct {
	MessageID int64 `json:"message_id"`
}

// Short7 lists replies to a message.
type Short7 struct {
	MessageID int64 `json:"message_id"`
}

// Updates. Present for workload decoding only; dispatching them fails
// with an unregistered-operation error on read-only backends.

// Update1 inserts a person.
type Update1 struct {
	PersonID  int64  `json:"person_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  int64  `json:"birthday"`
	CityID    int64  `json:"city_id"`
}

// Update2 adds a like from a person to a post.
type Update2 struct {
	PersonID     int64 `json:"person_id"`
	PostID       int64 `json:"post_id"`
	CreationDate int64 `json:"creation_date"`
}

// Update3 adds a like from a person to a comment.
type Update3 struct {
	PersonID     int64 `json:"person_id"`
	CommentID    int64 `json:"comment_id"`
	CreationDate int64 `json:"creation_date"`
}

// Update4 inserts a forum.
type Update4 struct {
	ForumID      int64  `json:"forum_id"`
	ForumTitle   string `json:"forum_title"`
	CreationDate int64  `json:"creation_date"`
	ModeratorID  int64  `json:"moderator_id"`
}

// Update5 adds a forum membership.
type Update5 struct {
	ForumID  int64 `json:"forum_id"`
	PersonID int64 `json:"person_id"`
	JoinDate int64 `json:"join_date"`
}

// Update6 inserts a post.
type Update6 struct {
	PostID       int64  `json:"post_id"`
	AuthorID     int64  `json:"author_id"`
	ForumID      int64  `json:"forum_id"`
	Content      string `json:"content"`
	CreationDate int64  `json:"creation_date"`
}

// Update7 inserts a comment.
type Update7 struct {
	CommentID    int64  `json:"comment_id"`
	AuthorID     int64  `json:"author_id"`
	ReplyToID    int64  `json:"reply_to_id"`
	Content      string `json:"content"`
	CreationDate int64  `json:"creation_date"`
}

// Update8 adds a friendship edge.
type Update8 struct {
	Person1ID    int64 `json:"person1_id"`
	Person2ID    int64 `json:"person2_id"`
	CreationDate int64 `json:"creation_date"`
}

func (*Complex1) Kind() Kind  { return KindComplex1 }
func (*Complex2) Kind() Kind  { return KindComplex2 }
func (*Complex3) Kind() Kind  { return KindComplex3 }
func (*Complex4) Kind() Kind  { return KindComplex4 }
func (*Complex5) Kind() Kind  { return KindComplex5 }
func (*Complex6) Kind() Kind  { return KindComplex6 }
func (*Complex7) Kind() Kind  { return KindComplex7 }
func (*Complex8) Kind() Kind  { return KindComplex8 }
func (*Complex9) Kind() Kind  { return KindComplex9 }
func (*Complex10) Kind() Kind { return KindComplex10 }
func (*Complex11) Kind() Kind { return KindComplex11 }
func (*Complex12) Kind() Kind { return KindComplex12 }
func (*Complex13) Kind() Kind { return KindComplex13 }
func (*Complex14) Kind() Kind { return KindComplex14 }
func (*Short1) Kind() Kind    { return KindShort1 }
func (*Short2) Kind() Kind    { return KindShort2 }
func (*Short3) Kind() Kind    { return KindShort3 }
func (*Short4) Kind() Kind    { return KindShort4 }
func (*Short5) Kind() Kind    { return KindShort5 }
func (*Short6) Kind() Kind    { return KindShort6 }
func (*Short7) Kind() Kind    { return KindShort7 }
func (*Update1) Kind() Kind   { return KindUpdate1 }
func (*Update2) Kind() Kind   { return KindUpdate2 }
func (*Update3) Kind() Kind   { return KindUpdate3 }
func (*Update4) Kind() Kind   { return KindUpdate4 }
func (*Update5) Kind() Kind   { return KindUpdate5 }
func (*Update6) Kind() Kind   { return KindUpdate6 }
func (*Update7) Kind() Kind   { return KindUpdate7 }
func (*Update8) Kind() Kind   { return KindUpdate8 }
