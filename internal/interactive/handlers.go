// Copyright (c) 2025 Snbench
// Licensed under the MIT License. See LICENSE file in the project root for details.

package interactive

import (
	"fmt"
	"strconv"

	"snbench/cli/internal/bindings"
	"snbench/cli/internal/registry"
	"snbench/cli/internal/templates"
	"snbench/cli/internal/workload"
)

const millisPerDay = 24 * 60 * 60 * 1000

// queryText fetches the template for kind and splices the parameters in.
func queryText(state *registry.ConnectionState, kind workload.Kind, params map[string]string) (string, error) {
	text, err := state.Templates.Get(kind.TemplateName())
	if err != nil {
		return "", err
	}
	return templates.Substitute(text, params), nil
}

// badOperation reports a handler invoked with the wrong operation type.
// Reaching it means the registry table is miswired.
func badOperation(kind workload.Kind, op workload.Operation) error {
	return fmt.Errorf("handler for %s received %T", kind, op)
}

func formatLong(n int64) string { return strconv.FormatInt(n, 10) }
func formatInt(n int) string    { return strconv.Itoa(n) }

type complex1 struct{}

func (complex1) Mode() registry.Mode { return registry.List }

func (complex1) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex1)
	if !ok {
		return "", badOperation(workload.KindComplex1, op)
	}
	return queryText(state, workload.KindComplex1, map[string]string{
		"personId":  formatLong(p.PersonID),
		"firstName": p.FirstName,
		"limit":     formatInt(p.Limit),
	})
}

func (complex1) MapRow(row bindings.Row) (workload.Result, error) {
	friendID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "friendLastName")
	if err != nil {
		return nil, err
	}
	// Not every query set binds a distance; rows without one map to 0.
	var distance int32
	if _, ok := row["distanceFromPerson"]; ok {
		if distance, err = bindings.Integer(row, "distanceFromPerson"); err != nil {
			return nil, err
		}
	}
	birthday, err := bindings.Date(row, "friendBirthDay")
	if err != nil {
		return nil, err
	}
	creationDate, err := bindings.Date(row, "friendCreationDate")
	if err != nil {
		return nil, err
	}
	gender, err := bindings.String(row, "friendGender")
	if err != nil {
		return nil, err
	}
	browser, err := bindings.String(row, "friendBrowserUsed")
	if err != nil {
		return nil, err
	}
	locationIP, err := bindings.String(row, "friendLocationIp")
	if err != nil {
		return nil, err
	}
	emails, err := bindings.StringList(row, "friendEmails")
	if err != nil {
		return nil, err
	}
	languages, err := bindings.StringList(row, "friendLanguages")
	if err != nil {
		return nil, err
	}
	cityName, err := bindings.String(row, "friendCityName")
	if err != nil {
		return nil, err
	}

	profile := &FriendProfile{
		FriendID:       friendID,
		LastName:       lastName,
		DistanceFromMe: distance,
		Birthday:       birthday,
		CreationDate:   creationDate,
		Gender:         gender,
		BrowserUsed:    browser,
		LocationIP:     locationIP,
		Emails:         emails,
		Languages:      languages,
		CityName:       cityName,
	}

	// Affiliations are unbound for people without studyAt/workAt edges;
	// some backends omit the field entirely in that case.
	if _, ok := row["friendUniversities"]; ok {
		if profile.Universities, err = bindings.StringList(row, "friendUniversities"); err != nil {
			return nil, err
		}
	}
	if _, ok := row["friendCompanies"]; ok {
		if profile.Companies, err = bindings.StringList(row, "friendCompanies"); err != nil {
			return nil, err
		}
	}

	return profile, nil
}

type complex2 struct{}

func (complex2) Mode() registry.Mode { return registry.List }

func (complex2) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex2)
	if !ok {
		return "", badOperation(workload.KindComplex2, op)
	}
	return queryText(state, workload.KindComplex2, map[string]string{
		"personId": formatLong(p.PersonID),
		"maxDate":  templates.DateTime(p.MaxDate),
		"limit":    formatInt(p.Limit),
	})
}

func (complex2) MapRow(row bindings.Row) (workload.Result, error) {
	personID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	firstName, err := bindings.String(row, "personFirstName")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "personLastName")
	if err != nil {
		return nil, err
	}
	messageID, err := bindings.Long(row, "messageId")
	if err != nil {
		return nil, err
	}
	content, err := bindings.String(row, "messageContent")
	if err != nil {
		return nil, err
	}
	creation, err := bindings.Date(row, "messageCreationDate")
	if err != nil {
		return nil, err
	}

	return &RecentMessage{
		PersonID:        personID,
		PersonFirstName: firstName,
		PersonLastName:  lastName,
		MessageID:       messageID,
		MessageContent:  content,
		MessageCreation: creation,
	}, nil
}

type complex3 struct{}

func (complex3) Mode() registry.Mode { return registry.List }

func (complex3) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex3)
	if !ok {
		return "", badOperation(workload.KindComplex3, op)
	}
	endDate := p.StartDate + int64(p.DurationDays)*millisPerDay
	return queryText(state, workload.KindComplex3, map[string]string{
		"personId":  formatLong(p.PersonID),
		"countryX":  p.CountryX,
		"countryY":  p.CountryY,
		"startDate": templates.DateTime(p.StartDate),
		"endDate":   templates.DateTime(endDate),
		"limit":     formatInt(p.Limit),
	})
}

func (complex3) MapRow(row bindings.Row) (workload.Result, error) {
	personID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	firstName, err := bindings.String(row, "personFirstName")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "personLastName")
	if err != nil {
		return nil, err
	}
	countX, err := bindings.Integer(row, "countX")
	if err != nil {
		return nil, err
	}
	countY, err := bindings.Integer(row, "countY")
	if err != nil {
		return nil, err
	}
	count, err := bindings.Integer(row, "count")
	if err != nil {
		return nil, err
	}

	return &CountryMessageCounts{
		PersonID:        personID,
		PersonFirstName: firstName,
		PersonLastName:  lastName,
		CountX:          countX,
		CountY:          countY,
		Count:           count,
	}, nil
}

type complex4 struct{}

func (complex4) Mode() registry.Mode { return registry.List }

func (complex4) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex4)
	if !ok {
		return "", badOperation(workload.KindComplex4, op)
	}
	endDate := p.StartDate + int64(p.DurationDays)*millisPerDay
	return queryText(state, workload.KindComplex4, map[string]string{
		"personId":  formatLong(p.PersonID),
		"startDate": templates.DateTime(p.StartDate),
		"endDate":   templates.DateTime(endDate),
		"limit":     formatInt(p.Limit),
	})
}

func (complex4) MapRow(row bindings.Row) (workload.Result, error) {
	tagName, err := bindings.String(row, "tagName")
	if err != nil {
		return nil, err
	}
	count, err := bindings.Integer(row, "count")
	if err != nil {
		return nil, err
	}

	return &TagCount{TagName: tagName, Count: count, kind: workload.KindComplex4}, nil
}

type complex5 struct{}

func (complex5) Mode() registry.Mode { return registry.List }

func (complex5) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex5)
	if !ok {
		return "", badOperation(workload.KindComplex5, op)
	}
	return queryText(state, workload.KindComplex5, map[string]string{
		"personId": formatLong(p.PersonID),
		"minDate":  templates.DateTime(p.MinDate),
		"limit":    formatInt(p.Limit),
	})
}

func (complex5) MapRow(row bindings.Row) (workload.Result, error) {
	title, err := bindings.String(row, "forumTitle")
	if err != nil {
		return nil, err
	}
	count, err := bindings.Integer(row, "count")
	if err != nil {
		return nil, err
	}

	return &ForumPostCount{ForumTitle: title, Count: count}, nil
}

type complex6 struct{}

func (complex6) Mode() registry.Mode { return registry.List }

func (complex6) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex6)
	if !ok {
		return "", badOperation(workload.KindComplex6, op)
	}
	return queryText(state, workload.KindComplex6, map[string]string{
		"personId": formatLong(p.PersonID),
		"tagName":  p.TagName,
		"limit":    formatInt(p.Limit),
	})
}

func (complex6) MapRow(row bindings.Row) (workload.Result, error) {
	tagName, err := bindings.String(row, "tagName")
	if err != nil {
		return nil, err
	}
	count, err := bindings.Integer(row, "count")
	if err != nil {
		return nil, err
	}

	return &TagCount{TagName: tagName, Count: count, kind: workload.KindComplex6}, nil
}

type complex7 struct{}

func (complex7) Mode() registry.Mode { return registry.List }

func (complex7) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex7)
	if !ok {
		return "", badOperation(workload.KindComplex7, op)
	}
	return queryText(state, workload.KindComplex7, map[string]string{
		"personId": formatLong(p.PersonID),
		"limit":    formatInt(p.Limit),
	})
}

func (complex7) MapRow(row bindings.Row) (workload.Result, error) {
	personID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	firstName, err := bindings.String(row, "personFirstName")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "personLastName")
	if err != nil {
		return nil, err
	}
	likeCreation, err := bindings.Date(row, "likeCreationDate")
	if err != nil {
		return nil, err
	}
	messageID, err := bindings.Long(row, "messageId")
	if err != nil {
		return nil, err
	}
	content, err := bindings.String(row, "messageContent")
	if err != nil {
		return nil, err
	}
	latency, err := bindings.Integer(row, "latency")
	if err != nil {
		return nil, err
	}
	isNew, err := bindings.Bool(row, "isNew")
	if err != nil {
		return nil, err
	}

	return &RecentLiker{
		PersonID:         personID,
		PersonFirstName:  firstName,
		PersonLastName:   lastName,
		LikeCreationDate: likeCreation,
		MessageID:        messageID,
		MessageContent:   content,
		MinutesLatency:   latency,
		IsNew:            isNew,
	}, nil
}

type complex8 struct{}

func (complex8) Mode() registry.Mode { return registry.List }

func (complex8) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex8)
	if !ok {
		return "", badOperation(workload.KindComplex8, op)
	}
	return queryText(state, workload.KindComplex8, map[string]string{
		"personId": formatLong(p.PersonID),
		"limit":    formatInt(p.Limit),
	})
}

func (complex8) MapRow(row bindings.Row) (workload.Result, error) {
	return mapReply(row, workload.KindComplex8)
}

type complex9 struct{}

func (complex9) Mode() registry.Mode { return registry.List }

func (complex9) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex9)
	if !ok {
		return "", badOperation(workload.KindComplex9, op)
	}
	return queryText(state, workload.KindComplex9, map[string]string{
		"personId": formatLong(p.PersonID),
		"maxDate":  templates.DateTime(p.MaxDate),
		"limit":    formatInt(p.Limit),
	})
}

func (complex9) MapRow(row bindings.Row) (workload.Result, error) {
	return mapReply(row, workload.KindComplex9)
}

// mapReply maps the comment-with-author shape complex_8 and complex_9
// share.
func mapReply(row bindings.Row, kind workload.Kind) (workload.Result, error) {
	personID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	firstName, err := bindings.String(row, "personFirstName")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "personLastName")
	if err != nil {
		return nil, err
	}
	creation, err := bindings.Date(row, "commentCreationDate")
	if err != nil {
		return nil, err
	}
	commentID, err := bindings.Long(row, "commentId")
	if err != nil {
		return nil, err
	}
	content, err := bindings.String(row, "commentContent")
	if err != nil {
		return nil, err
	}

	return &RecentReply{
		PersonID:        personID,
		PersonFirstName: firstName,
		PersonLastName:  lastName,
		CommentCreation: creation,
		CommentID:       commentID,
		CommentContent:  content,
		kind:            kind,
	}, nil
}

type complex10 struct{}

func (complex10) Mode() registry.Mode { return registry.List }

func (complex10) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex10)
	if !ok {
		return "", badOperation(workload.KindComplex10, op)
	}
	nextMonth := p.Month%12 + 1
	return queryText(state, workload.KindComplex10, map[string]string{
		"personId":  formatLong(p.PersonID),
		"month":     formatInt(p.Month),
		"nextMonth": formatInt(nextMonth),
		"limit":     formatInt(p.Limit),
	})
}

func (complex10) MapRow(row bindings.Row) (workload.Result, error) {
	personID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	firstName, err := bindings.String(row, "personFirstName")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "personLastName")
	if err != nil {
		return nil, err
	}
	similarity, err := bindings.Integer(row, "similarity")
	if err != nil {
		return nil, err
	}
	gender, err := bindings.String(row, "personGender")
	if err != nil {
		return nil, err
	}
	place, err := bindings.String(row, "placeName")
	if err != nil {
		return nil, err
	}

	return &FriendRecommendation{
		PersonID:        personID,
		PersonFirstName: firstName,
		PersonLastName:  lastName,
		Similarity:      similarity,
		Gender:          gender,
		CityName:        place,
	}, nil
}

type complex11 struct{}

func (complex11) Mode() registry.Mode { return registry.List }

func (complex11) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex11)
	if !ok {
		return "", badOperation(workload.KindComplex11, op)
	}
	return queryText(state, workload.KindComplex11, map[string]string{
		"personId":     formatLong(p.PersonID),
		"countryName":  p.CountryName,
		"workFromYear": formatInt(p.WorkFromYear),
		"limit":        formatInt(p.Limit),
	})
}

func (complex11) MapRow(row bindings.Row) (workload.Result, error) {
	personID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	firstName, err := bindings.String(row, "personFirstName")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "personLastName")
	if err != nil {
		return nil, err
	}
	organisation, err := bindings.String(row, "organisationName")
	if err != nil {
		return nil, err
	}
	worksFrom, err := bindings.Integer(row, "worksFrom")
	if err != nil {
		return nil, err
	}

	return &JobReferral{
		PersonID:         personID,
		PersonFirstName:  firstName,
		PersonLastName:   lastName,
		OrganisationName: organisation,
		WorksFrom:        worksFrom,
	}, nil
}

type complex12 struct{}

func (complex12) Mode() registry.Mode { return registry.List }

func (complex12) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex12)
	if !ok {
		return "", badOperation(workload.KindComplex12, op)
	}
	return queryText(state, workload.KindComplex12, map[string]string{
		"personId":     formatLong(p.PersonID),
		"tagClassName": p.TagClassName,
		"limit":        formatInt(p.Limit),
	})
}

func (complex12) MapRow(row bindings.Row) (workload.Result, error) {
	personID, err := bindings.Long(row, "personId")
	if err != nil {
		return nil, err
	}
	firstName, err := bindings.String(row, "personFirstName")
	if err != nil {
		return nil, err
	}
	lastName, err := bindings.String(row, "personLastName")
	if err != nil {
		return nil, err
	}
	tagNames, err := bindings.StringList(row, "tagNames")
	if err != nil {
		return nil, err
	}
	count, err := bindings.Integer(row, "count")
	if err != nil {
		return nil, err
	}

	return &ExpertReply{
		PersonID:        personID,
		PersonFirstName: firstName,
		PersonLastName:  lastName,
		TagNames:        tagNames,
		Count:           count,
	}, nil
}

type complex13 struct{}

func (complex13) Mode() registry.Mode { return registry.Singleton }

// Default is the no-path answer: length -1.
func (complex13) Default() workload.Result {
	return &PathLength{Length: -1}
}

func (complex13) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex13)
	if !ok {
		return "", badOperation(workload.KindComplex13, op)
	}
	return queryText(state, workload.KindComplex13, map[string]string{
		"person1Id": formatLong(p.Person1ID),
		"person2Id": formatLong(p.Person2ID),
	})
}

func (complex13) MapRow(row bindings.Row) (workload.Result, error) {
	length, err := bindings.Integer(row, "length")
	if err != nil {
		return nil, err
	}
	return &PathLength{Length: length}, nil
}

type complex14 struct{}

func (complex14) Mode() registry.Mode { return registry.List }

func (complex14) BuildQuery(state *registry.ConnectionState, op workload.Operation) (string, error) {
	p, ok := op.(*workload.Complex14)
	if !ok {
		return "", badOperation(workload.KindComplex14, op)
	}
	return queryText(state, workload.KindComplex14, map[string]string{
		"person1Id": formatLong(p.Person1ID),
		"person2Id": formatLong(p.Person2ID),
	})
}

func (complex14) MapRow(row bindings.Row) (workload.Result, error) {
	personIDs, err := bindings.LongList(row, "personIds")
	if err != nil {
		return nil, err
	}
	weight, err := bindings.Double(row, "weight")
	if err != nil {
		return nil, err
	}

	return &WeightedPath{PersonIDs: personIDs, Weight: weight}, nil
}

// Register wires every supported complex read handler into the
// registry. Short reads and updates are deliberately absent: dispatching
// them must fail as unregistered rather than silently no-op.
func Register(r *registry.Registry) error {
	handlers := []struct {
		kind workload.Kind
		h    registry.Handler
	}{
		{workload.KindComplex1, complex1{}},
		{workload.KindComplex2, complex2{}},
		{workload.KindComplex3, complex3{}},
		{workload.KindComplex4, complex4{}},
		{workload.KindComplex5, complex5{}},
		{workload.KindComplex6, complex6{}},
		{workload.KindComplex7, complex7{}},
		{workload.KindComplex8, complex8{}},
		{workload.KindComplex9, complex9{}},
		{workload.KindComplex10, complex10{}},
		{workload.KindComplex11, complex11{}},
		{workload.KindComplex12, complex12{}},
		{workload.KindComplex13, complex13{}},
		{workload.KindComplex14, complex14{}},
	}

	for _, entry := range handlers {
		if err := r.Register(entry.kind, entry.h); err != nil {
			return err
		}
	}

	return nil
}
