//go:build e2e
// +build e2e

package e2e

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type idResponse struct {
	ID uuid.UUID `json:"id"`
}

type measurementView struct {
	ID              uuid.UUID  `json:"id"`
	TeamID          *uuid.UUID `json:"team_id"`
	TeamContextAuto bool       `json:"team_context_auto"`
	Age             *int       `json:"age"`
	Units           string     `json:"units"`
}

type measurementListing struct {
	Measurements []measurementView `json:"measurements"`
	Total        int               `json:"total"`
}

func (s *E2ETestSuite) createOrganization(name string) uuid.UUID {
	resp, raw := s.doRequest(http.MethodPost, "/organizations", map[string]string{"name": name})
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(raw))

	var out idResponse
	require.NoError(s.T(), json.Unmarshal(raw, &out))
	return out.ID
}

func (s *E2ETestSuite) createAthlete(orgID uuid.UUID, firstName, lastName string, birthDate *time.Time) uuid.UUID {
	body := map[string]interface{}{
		"first_name":      firstName,
		"last_name":       lastName,
		"organization_id": orgID,
	}
	if birthDate != nil {
		body["birth_date"] = birthDate.Format(time.RFC3339)
	}
	resp, raw := s.doRequest(http.MethodPost, "/athletes", body)
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(raw))

	var out idResponse
	require.NoError(s.T(), json.Unmarshal(raw, &out))
	return out.ID
}

func (s *E2ETestSuite) createTeam(orgID uuid.UUID, name string) uuid.UUID {
	resp, raw := s.doRequest(http.MethodPost, "/teams", map[string]interface{}{
		"organization_id": orgID,
		"name":            name,
	})
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(raw))

	var out idResponse
	require.NoError(s.T(), json.Unmarshal(raw, &out))
	return out.ID
}

func (s *E2ETestSuite) addMembership(userID, teamID uuid.UUID) {
	resp, raw := s.doRequest(http.MethodPost, "/memberships", map[string]interface{}{
		"user_id": userID,
		"team_id": teamID,
	})
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(raw))
}

func (s *E2ETestSuite) recordMeasurement(userID uuid.UUID, metric string, value float64) measurementView {
	resp, raw := s.doRequest(http.MethodPost, "/measurements", map[string]interface{}{
		"user_id":      userID,
		"metric":       metric,
		"value":        value,
		"date":         time.Now().Format(time.RFC3339),
		"submitted_by": uuid.New(),
	})
	require.Equal(s.T(), http.StatusCreated, resp.StatusCode, string(raw))

	var out measurementView
	require.NoError(s.T(), json.Unmarshal(raw, &out))
	return out
}

// TestMeasurementAttributionLifecycle drives the full path: enroll, roster,
// record, verify, aggregate.
func (s *E2ETestSuite) TestMeasurementAttributionLifecycle() {
	orgID := s.createOrganization("Riverside Athletics " + uuid.NewString())
	birthDate := time.Now().AddDate(-14, -1, 0)
	userID := s.createAthlete(orgID, "Jordan", "Lee", &birthDate)
	teamID := s.createTeam(orgID, "U15 Girls")
	s.addMembership(userID, teamID)

	recorded := s.recordMeasurement(userID, "FLY10_TIME", 1.45)
	require.NotNil(s.T(), recorded.TeamID)
	require.Equal(s.T(), teamID, *recorded.TeamID)
	require.True(s.T(), recorded.TeamContextAuto)
	require.Equal(s.T(), "s", recorded.Units)
	require.NotNil(s.T(), recorded.Age)
	require.Equal(s.T(), 14, *recorded.Age)

	// Verify it.
	resp, raw := s.doRequest(http.MethodPost,
		fmt.Sprintf("/measurements/%s/verify", recorded.ID),
		map[string]interface{}{"verified_by": uuid.New()})
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(raw))

	// Verifying twice conflicts.
	resp, _ = s.doRequest(http.MethodPost,
		fmt.Sprintf("/measurements/%s/verify", recorded.ID),
		map[string]interface{}{"verified_by": uuid.New()})
	require.Equal(s.T(), http.StatusConflict, resp.StatusCode)

	// The dashboard sees it.
	resp, raw = s.doRequest(http.MethodGet, "/statistics/dashboard?organization_id="+orgID.String(), nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(raw))

	var dashboard struct {
		Summary struct {
			Athletes             int `json:"athletes"`
			Measurements         int `json:"measurements"`
			VerifiedMeasurements int `json:"verified_measurements"`
		} `json:"summary"`
	}
	require.NoError(s.T(), json.Unmarshal(raw, &dashboard))
	require.Equal(s.T(), 1, dashboard.Summary.Athletes)
	require.Equal(s.T(), 1, dashboard.Summary.Measurements)
	require.Equal(s.T(), 1, dashboard.Summary.VerifiedMeasurements)
}

// TestOverlappingMembershipsStayAmbiguous exercises the review queue.
func (s *E2ETestSuite) TestOverlappingMembershipsStayAmbiguous() {
	orgID := s.createOrganization("Lakeside Club " + uuid.NewString())
	userID := s.createAthlete(orgID, "Sam", "Ortiz", nil)
	s.addMembership(userID, s.createTeam(orgID, "Club Team"))
	s.addMembership(userID, s.createTeam(orgID, "Regional Select"))

	recorded := s.recordMeasurement(userID, "VERTICAL_JUMP", 24.5)
	require.Nil(s.T(), recorded.TeamID)
	require.False(s.T(), recorded.TeamContextAuto)

	resp, raw := s.doRequest(http.MethodGet, "/measurements/ambiguous?organization_id="+orgID.String(), nil)
	require.Equal(s.T(), http.StatusOK, resp.StatusCode, string(raw))

	var listing measurementListing
	require.NoError(s.T(), json.Unmarshal(raw, &listing))
	require.Equal(s.T(), 1, listing.Total)
	require.Equal(s.T(), recorded.ID, listing.Measurements[0].ID)
}

// TestConcurrentMembershipAdds checks the partial unique index holds up
// under racing requests for the same pair.
func (s *E2ETestSuite) TestConcurrentMembershipAdds() {
	orgID := s.createOrganization("Hillcrest " + uuid.NewString())
	userID := s.createAthlete(orgID, "Riley", "Chen", nil)
	teamID := s.createTeam(orgID, "U17 Boys")

	done := make(chan int, 4)
	for i := 0; i < 4; i++ {
		go func() {
			resp, _ := s.doRequest(http.MethodPost, "/memberships", map[string]interface{}{
				"user_id": userID,
				"team_id": teamID,
			})
			done <- resp.StatusCode
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	var count int64
	require.NoError(s.T(), s.db.Table("memberships").
		Where("user_id = ? AND team_id = ? AND is_active = TRUE", userID, teamID).
		Count(&count).Error)
	require.Equal(s.T(), int64(1), count)
}
