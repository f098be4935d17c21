package intents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windhamg/moviebot-lambda/internal/intents/mocks"
	"github.com/windhamg/moviebot-lambda/internal/location"
	"github.com/windhamg/moviebot-lambda/internal/models"
	"github.com/windhamg/moviebot-lambda/internal/provider/listings"
	"github.com/windhamg/moviebot-lambda/internal/provider/metadata"
)

// 03:00 UTC 10 марта - это ещё 9 марта в UTC-07:00
var testNow = time.Date(2018, 3, 10, 3, 0, 0, 0, time.UTC)

type fixture struct {
	listings *mocks.MockListings
	metadata *mocks.MockMetadata
	d        *Dispatcher
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	f := &fixture{
		listings: mocks.NewMockListings(ctrl),
		metadata: mocks.NewMockMetadata(ctrl),
	}
	f.d = NewDispatcher(f.listings, f.metadata, WithClock(func() time.Time { return testNow }))
	return f
}

func strPtr(s string) *string { return &s }

func request(intent Intent, source string, slots models.Slots, session models.SessionAttributes) *models.Request {
	return &models.Request{
		InvocationSource:  source,
		UserID:            "user-1",
		SessionAttributes: session,
		Bot:               models.Bot{Name: "MovieBot"},
		CurrentIntent:     models.CurrentIntent{Name: string(intent), Slots: slots},
	}
}

func showtime(theater, at string) listings.Showtime {
	return listings.Showtime{Theatre: listings.Theatre{Name: theater}, DateTime: at}
}

func TestDispatch_UnknownIntent(t *testing.T) {
	f := newFixture(t)

	_, err := f.d.Dispatch(context.Background(), request("OrderPizza", models.SourceDialogCodeHook, nil, nil))
	assert.ErrorIs(t, err, ErrUnknownIntent)
}

func TestDispatch_UnknownSource(t *testing.T) {
	f := newFixture(t)

	_, err := f.d.Dispatch(context.Background(), request(GetMovies, "Somewhere", nil, nil))
	assert.ErrorIs(t, err, ErrUnknownSource)
}

func TestDispatch_DialogPhase(t *testing.T) {
	tests := []struct {
		name        string
		slots       models.Slots
		session     models.SessionAttributes
		wantType    string
		wantMessage *models.Message
		wantZip     string
	}{
		{
			name:     "missing location",
			slots:    models.Slots{location.Slot: nil},
			wantType: models.ActionElicitSlot,
		},
		{
			name:        "invalid location",
			slots:       models.Slots{location.Slot: strPtr("85A01")},
			wantType:    models.ActionElicitSlot,
			wantMessage: &models.Message{ContentType: models.ContentTypePlainText, Content: location.ViolationMessage},
		},
		{
			name:     "valid location in slot",
			slots:    models.Slots{location.Slot: strPtr("85701-1234")},
			wantType: models.ActionDelegate,
			wantZip:  "85701",
		},
		{
			name:     "stored location",
			slots:    models.Slots{location.Slot: nil},
			session:  models.SessionAttributes{models.KeyZipcode: "10001"},
			wantType: models.ActionDelegate,
			wantZip:  "10001",
		},
	}

	for _, intent := range []Intent{GetMovies, FindMovie, GetTheaterMovies, FindShowtimes} {
		for _, tt := range tests {
			t.Run(string(intent)+"/"+tt.name, func(t *testing.T) {
				// в фазе проверки провайдеры не вызываются
				f := newFixture(t)

				resp, err := f.d.Dispatch(context.Background(), request(intent, models.SourceDialogCodeHook, tt.slots, tt.session))
				require.NoError(t, err)

				assert.Equal(t, tt.wantType, resp.DialogAction.Type)
				assert.Equal(t, tt.wantMessage, resp.DialogAction.Message)
				assert.Equal(t, tt.slots, resp.DialogAction.Slots)
				if tt.wantType == models.ActionElicitSlot {
					assert.Equal(t, location.Slot, resp.DialogAction.SlotToElicit)
					assert.Equal(t, string(intent), resp.DialogAction.IntentName)
				}
				assert.Equal(t, tt.wantZip, resp.SessionAttributes[models.KeyZipcode])
			})
		}
	}
}

func TestDispatch_SessionKeysPreserved(t *testing.T) {
	f := newFixture(t)
	session := models.SessionAttributes{"favorite": "noir"}

	resp, err := f.d.Dispatch(context.Background(), request(GetMovies, models.SourceDialogCodeHook,
		models.Slots{location.Slot: strPtr("85701")}, session))
	require.NoError(t, err)

	assert.Equal(t, models.SessionAttributes{"favorite": "noir", models.KeyZipcode: "85701"}, resp.SessionAttributes)
}

func TestDispatch_FulfillmentWithoutLocation(t *testing.T) {
	f := newFixture(t)

	_, err := f.d.Dispatch(context.Background(), request(GetMovies, models.SourceFulfillmentCodeHook, models.Slots{}, nil))
	assert.ErrorIs(t, err, ErrLocationRequired)
}

func TestGetMovies(t *testing.T) {
	f := newFixture(t)
	f.listings.EXPECT().
		Showings(gomock.Any(), listings.Query{StartDate: "2018-03-09", Zipcode: "85701"}).
		Return([]listings.Movie{{Title: "Movie A"}, {Title: "Movie A"}, {Title: "Movie B"}}, nil)

	resp, err := f.d.Dispatch(context.Background(), request(GetMovies, models.SourceFulfillmentCodeHook,
		models.Slots{location.Slot: nil}, models.SessionAttributes{models.KeyZipcode: "85701"}))
	require.NoError(t, err)

	assert.Equal(t, models.ActionElicitIntent, resp.DialogAction.Type)
	assert.Equal(t, "Here are the movies I found:", resp.DialogAction.Message.Content)

	card := resp.DialogAction.ResponseCard
	require.NotNil(t, card)
	require.Len(t, card.GenericAttachments, 1)
	assert.Equal(t, "Movies showing near 85701", card.GenericAttachments[0].Title)
	assert.Equal(t, "Select a movie to see theaters", card.GenericAttachments[0].SubTitle)
	assert.Equal(t, []models.Button{
		{Text: "Movie A", Value: "Where is the film Movie A playing near 85701"},
		{Text: "Movie B", Value: "Where is the film Movie B playing near 85701"},
	}, card.GenericAttachments[0].Buttons)
}

func TestGetMovies_NoResults(t *testing.T) {
	for name, ret := range map[string]error{"empty": nil, "unreachable": errors.New("connection refused")} {
		t.Run(name, func(t *testing.T) {
			f := newFixture(t)
			f.listings.EXPECT().Showings(gomock.Any(), gomock.Any()).Return(nil, ret)

			resp, err := f.d.Dispatch(context.Background(), request(GetMovies, models.SourceFulfillmentCodeHook,
				models.Slots{location.Slot: strPtr("85701")}, nil))
			require.NoError(t, err)

			assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
			assert.Equal(t, models.FulfillmentFulfilled, resp.DialogAction.FulfillmentState)
			assert.Equal(t, "I'm sorry, I can't find any movies showing near *85701*", resp.DialogAction.Message.Content)
		})
	}
}

var tucson = []listings.Movie{
	{Title: "Interstellar", Showtimes: []listings.Showtime{
		showtime("AMC Foothills 15", "2018-03-09T21:15"),
		showtime("Harkins Spectrum 18", "2018-03-09T19:00"),
		showtime("AMC Foothills 15", "2018-03-09T13:05"),
	}},
	{Title: "Black Panther", Showtimes: []listings.Showtime{
		showtime("Harkins Spectrum 18", "2018-03-09T20:00"),
	}},
	{Title: "Interstellar", Showtimes: []listings.Showtime{
		showtime("Loft Cinema", "2018-03-10T18:00"),
		showtime("AMC Foothills 15", "2018-03-10T10:30"),
	}},
}

func TestFindMovie(t *testing.T) {
	f := newFixture(t)
	f.listings.EXPECT().Showings(gomock.Any(), listings.Query{StartDate: "2018-03-09", Zipcode: "85701"}).Return(tucson, nil)

	resp, err := f.d.Dispatch(context.Background(), request(FindMovie, models.SourceFulfillmentCodeHook,
		models.Slots{SlotMovieTitle: strPtr("interstelar"), location.Slot: strPtr("85701")}, nil))
	require.NoError(t, err)

	assert.Equal(t, models.ActionElicitIntent, resp.DialogAction.Type)
	assert.Equal(t, "*Interstellar* is showing at the following theaters:", resp.DialogAction.Message.Content)

	a := resp.DialogAction.ResponseCard.GenericAttachments
	require.Len(t, a, 1)
	assert.Equal(t, "Theaters showing Interstellar", a[0].Title)
	assert.Equal(t, "Select a theater to see showtimes", a[0].SubTitle)
	assert.Equal(t, []models.Button{
		{Text: "AMC Foothills 15", Value: "When is theater AMC Foothills 15 showing film Interstellar"},
		{Text: "Harkins Spectrum 18", Value: "When is theater Harkins Spectrum 18 showing film Interstellar"},
		{Text: "Loft Cinema", Value: "When is theater Loft Cinema showing film Interstellar"},
	}, a[0].Buttons)
}

func TestFindMovie_NoMatch(t *testing.T) {
	f := newFixture(t)
	f.listings.EXPECT().Showings(gomock.Any(), gomock.Any()).Return(tucson, nil)

	resp, err := f.d.Dispatch(context.Background(), request(FindMovie, models.SourceFulfillmentCodeHook,
		models.Slots{SlotMovieTitle: strPtr("Casablanca"), location.Slot: strPtr("85701")}, nil))
	require.NoError(t, err)

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, "I'm sorry, I can't find any theaters showing *Casablanca*", resp.DialogAction.Message.Content)
}

func TestGetTheaterMovies(t *testing.T) {
	f := newFixture(t)
	f.listings.EXPECT().Showings(gomock.Any(), gomock.Any()).Return(tucson, nil)

	resp, err := f.d.Dispatch(context.Background(), request(GetTheaterMovies, models.SourceFulfillmentCodeHook,
		models.Slots{SlotTheaterName: strPtr("harkins spectrum"), location.Slot: strPtr("85701")}, nil))
	require.NoError(t, err)

	assert.Equal(t, models.ActionElicitIntent, resp.DialogAction.Type)
	assert.Equal(t, "Currently showing at *Harkins Spectrum 18*:", resp.DialogAction.Message.Content)

	a := resp.DialogAction.ResponseCard.GenericAttachments
	require.Len(t, a, 1)
	assert.Equal(t, "Now showing", a[0].Title)
	assert.Equal(t, "Select a movie to see showtimes", a[0].SubTitle)
	assert.Equal(t, []models.Button{
		{Text: "Interstellar", Value: "When is theater Harkins Spectrum 18 showing film Interstellar"},
		{Text: "Black Panther", Value: "When is theater Harkins Spectrum 18 showing film Black Panther"},
	}, a[0].Buttons)
}

func TestGetTheaterMovies_NoMatch(t *testing.T) {
	f := newFixture(t)
	f.listings.EXPECT().Showings(gomock.Any(), gomock.Any()).Return(tucson, nil)

	resp, err := f.d.Dispatch(context.Background(), request(GetTheaterMovies, models.SourceFulfillmentCodeHook,
		models.Slots{SlotTheaterName: strPtr("Drive-In"), location.Slot: strPtr("85701")}, nil))
	require.NoError(t, err)

	assert.Equal(t, "I'm sorry, I can't find any movies showing at *Drive-In*", resp.DialogAction.Message.Content)
}

func TestFindShowtimes(t *testing.T) {
	f := newFixture(t)
	f.listings.EXPECT().
		Showings(gomock.Any(), listings.Query{StartDate: "2018-03-09", Zipcode: "85701", NumDays: 3}).
		Return(tucson, nil)

	resp, err := f.d.Dispatch(context.Background(), request(FindShowtimes, models.SourceFulfillmentCodeHook,
		models.Slots{
			SlotMovieTitle:  strPtr("interstellr"),
			SlotTheaterName: strPtr("AMC Foothills 15"),
			location.Slot:   nil,
		},
		models.SessionAttributes{models.KeyZipcode: "85701"}))
	require.NoError(t, err)

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, models.FulfillmentFulfilled, resp.DialogAction.FulfillmentState)
	// порядок провайдера, без сортировки по времени
	assert.Equal(t, "*Interstellar* is showing at AMC Foothills 15 at the following times:\n```"+
		"* Fri, Mar 9th @ 9:15 pm\n"+
		"* Fri, Mar 9th @ 1:05 pm\n"+
		"* Sat, Mar 10th @ 10:30 am```", resp.DialogAction.Message.Content)
}

func TestFindShowtimes_NoPair(t *testing.T) {
	f := newFixture(t)
	f.listings.EXPECT().Showings(gomock.Any(), gomock.Any()).Return(tucson, nil)

	resp, err := f.d.Dispatch(context.Background(), request(FindShowtimes, models.SourceFulfillmentCodeHook,
		models.Slots{
			SlotMovieTitle:  strPtr("Black Panther"),
			SlotTheaterName: strPtr("Loft Cinema"),
			location.Slot:   strPtr("85701"),
		}, nil))
	require.NoError(t, err)

	assert.Equal(t, "I'm sorry, I can't find any showtimes for *Black Panther* at Loft Cinema", resp.DialogAction.Message.Content)
}

func TestGetMovieDetail(t *testing.T) {
	f := newFixture(t)
	gomock.InOrder(
		f.metadata.EXPECT().Search(gomock.Any(), "black panter").Return([]metadata.Candidate{
			{ID: 1, Title: "Black"},
			{ID: 284054, Title: "Black Panther"},
		}, nil),
		f.metadata.EXPECT().Certification(gomock.Any(), int64(284054)).Return("PG-13", nil),
		f.metadata.EXPECT().Details(gomock.Any(), int64(284054)).Return(metadata.Details{Runtime: 134, ReleaseDate: "2018-02-13"}, nil),
	)

	resp, err := f.d.Dispatch(context.Background(), request(GetMovieDetail, models.SourceFulfillmentCodeHook,
		models.Slots{SlotMovieTitle: strPtr("black panter")}, nil))
	require.NoError(t, err)

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, "Here is some info for *Black Panther*:\n_Release date_: Tue, Feb 13th 2018\n_Runtime_: 134 mins\n_Rating_: PG-13",
		resp.DialogAction.Message.Content)
}

func TestGetMovieDetail_SecondaryFailures(t *testing.T) {
	f := newFixture(t)
	f.metadata.EXPECT().Search(gomock.Any(), gomock.Any()).Return([]metadata.Candidate{{ID: 7, Title: "Heat"}}, nil)
	f.metadata.EXPECT().Certification(gomock.Any(), int64(7)).Return("", errors.New("timeout"))
	f.metadata.EXPECT().Details(gomock.Any(), int64(7)).Return(metadata.Details{}, errors.New("timeout"))

	resp, err := f.d.Dispatch(context.Background(), request(GetMovieDetail, models.SourceDialogCodeHook,
		models.Slots{SlotMovieTitle: strPtr("Heat")}, nil))
	require.NoError(t, err)

	assert.Equal(t, "Here is some info for *Heat*:\n_Release date_: \n_Runtime_: 0 mins\n_Rating_: ", resp.DialogAction.Message.Content)
}

func TestGetMovieDetail_NotFound(t *testing.T) {
	f := newFixture(t)
	f.metadata.EXPECT().Search(gomock.Any(), "Nonexistent Film").Return(nil, nil)

	resp, err := f.d.Dispatch(context.Background(), request(GetMovieDetail, models.SourceFulfillmentCodeHook,
		models.Slots{SlotMovieTitle: strPtr("Nonexistent Film")}, nil))
	require.NoError(t, err)

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, models.FulfillmentFulfilled, resp.DialogAction.FulfillmentState)
	assert.Equal(t, "I'm sorry, I can't find any info for *Nonexistent Film*", resp.DialogAction.Message.Content)
}

func TestHelp(t *testing.T) {
	f := newFixture(t)
	session := models.SessionAttributes{models.KeyZipcode: "85701"}

	resp, err := f.d.Dispatch(context.Background(), request(GetHelp, models.SourceDialogCodeHook, nil, session))
	require.NoError(t, err)

	assert.Equal(t, models.ActionClose, resp.DialogAction.Type)
	assert.Equal(t, models.FulfillmentFulfilled, resp.DialogAction.FulfillmentState)
	assert.Contains(t, resp.DialogAction.Message.Content, "Here are some examples of things you can ask me:\n  * What movies are out right now?")
	assert.Contains(t, resp.DialogAction.Message.Content, "  * What is _movie_ rated?")
	assert.Equal(t, session, resp.SessionAttributes)
}
