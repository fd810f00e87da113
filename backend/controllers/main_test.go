package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"examprep/backend/config"
	"examprep/backend/models"
	"examprep/backend/routes"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	app *fiber.App
	db  *gorm.DB
	cfg *config.Config
)

func TestMain(m *testing.M) {
	setup()
	os.Exit(m.Run())
}

func setup() {
	cfg = &config.Config{
		JWTSecret:       "testsecret",
		TokenTTLMinutes: 15,
		BcryptCost:      bcrypt.MinCost,
		ServerPort:      "8080",
	}

	var err error
	db, err = gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.UserEnrollment{},
		&models.UserStarredQuestion{},
		&models.Exam{},
		&models.Subject{},
		&models.Chapter{},
		&models.Subtopic{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuestionExamApplicability{},
		&models.Test{},
		&models.TestAnswer{},
		&models.TestAnswerSelection{},
		&models.UserSubjectAnalytics{},
		&models.UserChapterAnalytics{},
		&models.UserQuestionTypeAnalytics{},
	)
	if err != nil {
		panic(err)
	}

	app = fiber.New()
	routes.SetupRoutes(app, db, cfg)

	seedCatalog()
}

func floatRef(v float64) *float64 { return &v }

// seedCatalog populates one exam with one question of each type.
func seedCatalog() {
	db.Create(&models.Exam{ExamID: 1, ExamName: "JEE Main"})
	db.Create(&models.Subject{SubjectID: 1, SubjectName: "Physics"})
	db.Create(&models.Chapter{ChapterID: 1, ChapterName: "Mechanics", SubjectID: 1})
	db.Create(&models.Subtopic{SubtopicID: 1, SubtopicName: "Kinematics", ChapterID: 1})

	questions := []models.Question{
		{
			QuestionID:         "q_mcsc",
			QuestionText:       "What is the unit of force?",
			QuestionType:       models.QuestionTypeMCSC,
			SubtopicID:         1,
			DifficultyLevel:    models.DifficultyEasy,
			Source:             models.SourceNCERT,
			PositiveMarks:      4,
			NegativeMarks:      1,
			AIValidationStatus: models.ValidationValidated,
			Options: []models.QuestionOption{
				{OptionID: "opt_mcsc_a", OptionText: "Newton", IsCorrect: true},
				{OptionID: "opt_mcsc_b", OptionText: "Watt"},
				{OptionID: "opt_mcsc_c", OptionText: "Joule"},
				{OptionID: "opt_mcsc_d", OptionText: "Pascal"},
			},
		},
		{
			QuestionID:         "q_mcmc",
			QuestionText:       "Which of these are units of energy?",
			QuestionType:       models.QuestionTypeMCMC,
			SubtopicID:         1,
			DifficultyLevel:    models.DifficultyMedium,
			Source:             models.SourcePYQ,
			PositiveMarks:      4,
			NegativeMarks:      2,
			AIValidationStatus: models.ValidationValidated,
			Options: []models.QuestionOption{
				{OptionID: "opt_mcmc_a", OptionText: "Joule", IsCorrect: true},
				{OptionID: "opt_mcmc_b", OptionText: "Electronvolt", IsCorrect: true},
				{OptionID: "opt_mcmc_c", OptionText: "Newton"},
			},
		},
		{
			QuestionID:         "q_int",
			QuestionText:       "6 times 7?",
			QuestionType:       models.QuestionTypeINT,
			SubtopicID:         1,
			DifficultyLevel:    models.DifficultyEasy,
			Source:             models.SourceGenerated,
			PositiveMarks:      4,
			NegativeMarks:      1,
			AnswerValue:        floatRef(42),
			AIValidationStatus: models.ValidationValidated,
		},
		{
			QuestionID:         "q_num",
			QuestionText:       "What is the value of g?",
			QuestionType:       models.QuestionTypeNUM,
			SubtopicID:         1,
			DifficultyLevel:    models.DifficultyMedium,
			Source:             models.SourcePYQ,
			PositiveMarks:      4,
			NegativeMarks:      0,
			AnswerValue:        floatRef(9.8),
			AIValidationStatus: models.ValidationValidated,
		},
	}
	for i := range questions {
		db.Create(&questions[i])
		db.Create(&models.QuestionExamApplicability{QuestionID: questions[i].QuestionID, ExamID: 1})
	}
}

func doJSON(t *testing.T, method, path string, body interface{}, token string) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		assert.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func doFormLogin(t *testing.T, username, password string) *http.Response {
	t.Helper()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	var result map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

// registerUser creates an account and returns its access token.
func registerUser(t *testing.T, email, password, name string) string {
	t.Helper()

	resp := doJSON(t, "POST", "/register", map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	token := body["token"].(map[string]interface{})
	return token["access_token"].(string)
}
