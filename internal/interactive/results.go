// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package interactive implements the complex read queries of the
// social-network interactive workload: the per-query result shapes and
// the handlers that build backend queries and map result rows. Short
// reads and updates are intentionally not handled yet; dispatching them
// reports an unregistered operation.
package interactive

import "snbench/cli/internal/workload"

// FriendProfile is the complex_1 result: a matching friend's full
// profile. Dates are epoch milliseconds.
type FriendProfile struct {
	FriendID       int64    `json:"friend_id"`
	LastName       string   `json:"last_name"`
	DistanceFromMe int32    `json:"distance"`
	Birthday       int64    `json:"birthday"`
	CreationDate   int64    `json:"creation_date"`
	Gender         string   `json:"gender"`
	BrowserUsed    string   `json:"browser_used"`
	LocationIP     string   `json:"location_ip"`
	Emails         []string `json:"emails"`
	Languages      []string `json:"languages"`
	CityName       string   `json:"city_name"`
	Universities   []string `json:"universities,omitempty"`
	Companies      []string `json:"companies,omitempty"`
}

// RecentMessage is the complex_2 result: one message from a friend's
// recent activity.
type RecentMessage struct {
	PersonID        int64  `json:"person_id"`
	PersonFirstName string `json:"person_first_name"`
	PersonLastName  string `json:"person_last_name"`
	MessageID       int64  `json:"message_id"`
	MessageContent  string `json:"message_content"`
	MessageCreation int64  `json:"message_creation_date"`
}

// CountryMessageCounts is the complex_3 result: a friend's message
// counts from two countries.
type CountryMessageCounts struct {
	PersonID        int64  `json:"person_id"`
	PersonFirstName string `json:"person_first_name"`
	PersonLastName  string `json:"person_last_name"`
	CountX          int32  `json:"count_x"`
	CountY          int32  `json:"count_y"`
	Count           int32  `json:"count"`
}

// TagCount is the result shape shared by complex_4 and complex_6: a tag
// name with its post count.
type TagCount struct {
	TagName string `json:"tag_name"`
	Count   int32  `json:"count"`
	kind    workload.Kind
}

// ForumPostCount is the complex_5 result: a forum with the number of
// posts made by friends who joined it.
type ForumPostCount struct {
	ForumTitle string `json:"forum_title"`
	Count      int32  `json:"count"`
}

// RecentLiker is the complex_7 result: a person who recently liked one
// of the start person's messages.
type RecentLiker struct {
	PersonID         int64  `json:"person_id"`
	PersonFirstName  string `json:"person_first_name"`
	PersonLastName   string `json:"person_last_name"`
	LikeCreationDate int64  `json:"like_creation_date"`
	MessageID        int64  `json:"message_id"`
	MessageContent   string `json:"message_content"`
	MinutesLatency   int32  `json:"minutes_latency"`
	IsNew            bool   `json:"is_new"`
}

// RecentReply is the result shape shared by complex_8 and complex_9: a
// comment with its author.
type RecentReply struct {
	PersonID        int64  `json:"person_id"`
	PersonFirstName string `json:"person_first_name"`
	PersonLastName  string `json:"person_last_name"`
	CommentCreation int64  `json:"comment_creation_date"`
	CommentID       int64  `json:"comment_id"`
	CommentContent  string `json:"comment_content"`
	kind            workload.Kind
}

// FriendRecommendation is the complex_10 result: a friend-of-friend
// scored by common interests.
type FriendRecommendation struct {
	PersonID        int64  `json:"person_id"`
	PersonFirstName string `json:"person_first_name"`
	PersonLastName  string `json:"person_last_name"`
	Similarity      int32  `json:"similarity"`
	Gender          string `json:"gender"`
	CityName        string `json:"city_name"`
}

// JobReferral is the complex_11 result: a friend working at a company
// in the given country.
type JobReferral struct {
	PersonID         int64  `json:"person_id"`
	PersonFirstName  string `json:"person_first_name"`
	PersonLastName   string `json:"person_last_name"`
	OrganisationName string `json:"organisation_name"`
	WorksFrom        int32  `json:"works_from"`
}

// ExpertReply is the complex_12 result: a friend with the tags and
// reply count tying them to a tag class.
type ExpertReply struct {
	PersonID        int64    `json:"person_id"`
	PersonFirstName string   `json:"person_first_name"`
	PersonLastName  string   `json:"person_last_name"`
	TagNames        []string `json:"tag_names"`
	Count           int32    `json:"count"`
}

// PathLength is the complex_13 result: the shortest friendship path
// between two people, -1 when no path exists.
type PathLength struct {
	Length int32 `json:"length"`
}

// WeightedPath is the complex_14 result: one friendship path with its
// interaction weight.
type WeightedPath struct {
	PersonIDs []int64 `json:"person_ids"`
	Weight    float64 `json:"weight"`
}

func (*FriendProfile) Kind() workload.Kind        { return workload.KindComplex1 }
func (*RecentMessage) Kind() workload.Kind        { return workload.KindComplex2 }
func (*CountryMessageCounts) Kind() workload.Kind { return workload.KindComplex3 }
func (r *TagCount) Kind() workload.Kind           { return r.kind }
func (*ForumPostCount) Kind() workload.Kind       { return workload.KindComplex5 }
func (*RecentLiker) Kind() workload.Kind          { return workload.KindComplex7 }
func (r *RecentReply) Kind() workload.Kind        { return r.kind }
func (*FriendRecommendation) Kind() workload.Kind { return workload.KindComplex10 }
func (*JobReferral) Kind() workload.Kind          { return workload.KindComplex11 }
func (*ExpertReply) Kind() workload.Kind          { return workload.KindComplex12 }
func (*PathLength) Kind() workload.Kind           { return workload.KindComplex13 }
func (*WeightedPath) Kind() workload.Kind         { return workload.KindComplex14 }
