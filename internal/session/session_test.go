package session

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukydev/motor-quotation/internal/models"
	"github.com/ukydev/motor-quotation/internal/wizard"
)

func testSnapshot() wizard.Snapshot {
	return wizard.Snapshot{
		Step: wizard.StepCoverageSelection,
		Form: wizard.Form{
			VehicleType: "Car",
			Make:        "Suzuki",
			Model:       "Alto",
			ModelYear:   2022,
			City:        "Lahore",
			SumInsured:  2_500_000,
			FullName:    "Sana Malik",
			Mobile:      "03331234567",
			PersonalAccident: models.PersonalAccidentInput{
				Selected:   true,
				SumInsured: 500_000,
				Age:        29,
				Gender:     models.GenderFemale,
			},
		},
	}
}

func TestNewService(t *testing.T) {
	service, err := NewService("secret", 0)
	assert.NoError(t, err)
	assert.NotNil(t, service)
	assert.Equal(t, DefaultExpiry, service.expiry)

	_, err = NewService("", time.Hour)
	assert.ErrorIs(t, err, ErrNoSecret)
}

func TestService_IssueAndParse(t *testing.T) {
	service, _ := NewService("test-secret", time.Hour)

	token, err := service.Issue("", testSnapshot())
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.Parse(token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, testSnapshot(), claims.Wizard)

	t.Run("bearer prefix", func(t *testing.T) {
		claims, err := service.Parse("Bearer " + token)
		require.NoError(t, err)
		assert.Equal(t, wizard.StepCoverageSelection, claims.Wizard.Step)
	})

	t.Run("session id survives reissue", func(t *testing.T) {
		reissued, err := service.Issue(claims.ID, claims.Wizard)
		require.NoError(t, err)
		again, err := service.Parse(reissued)
		require.NoError(t, err)
		assert.Equal(t, claims.ID, again.ID)
	})
}

func TestService_Parse_Invalid(t *testing.T) {
	service, _ := NewService("test-secret", time.Hour)
	token, _ := service.Issue("", testSnapshot())

	// Test invalid token
	_, err := service.Parse("invalid-token")
	assert.Equal(t, ErrInvalidToken, err)

	_, err = service.Parse("")
	assert.Equal(t, ErrInvalidToken, err)

	other, _ := NewService("other-secret", time.Hour)
	_, err = other.Parse(token)
	assert.Equal(t, ErrInvalidToken, err, "wrong secret")

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	_, err = service.Parse(parts[0] + "." + parts[1] + "x." + parts[2])
	assert.Equal(t, ErrInvalidToken, err, "tampered payload")
}

func TestService_Parse_RejectsOtherAlgorithms(t *testing.T) {
	service, _ := NewService("test-secret", time.Hour)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "abc",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = service.Parse(none)
	assert.Equal(t, ErrInvalidToken, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = service.Parse(hs512)
	assert.Equal(t, ErrInvalidToken, err)
}

func TestService_Parse_Expired(t *testing.T) {
	service, _ := NewService("test-secret", time.Minute)
	issued := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)
	service.now = func() time.Time { return issued }
	token, err := service.Issue("", testSnapshot())
	require.NoError(t, err)

	service.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = service.Parse(token)

	assert.Equal(t, ErrExpiredToken, err)
}
