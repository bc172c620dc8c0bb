package service

import (
	"errors"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"reflect"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newCatalogService(db *gorm.DB) *CatalogService {
	return NewCatalogService(
		repository.NewSubjectRepository(db),
		repository.NewChapterRepository(db),
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
	)
}

func TestCreateQuestionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	quiz := createTestQuiz(t, db, "Validation")

	tests := []struct {
		name string
		in   QuestionInput
	}{
		{"three options", QuestionInput{QuestionText: "Q", Options: []string{"a", "b", "c"}, CorrectAnswer: 0}},
		{"five options", QuestionInput{QuestionText: "Q", Options: []string{"a", "b", "c", "d", "e"}, CorrectAnswer: 0}},
		{"empty option", QuestionInput{QuestionText: "Q", Options: []string{"a", "", "c", "d"}, CorrectAnswer: 0}},
		{"answer too high", QuestionInput{QuestionText: "Q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: 4}},
		{"answer negative", QuestionInput{QuestionText: "Q", Options: []string{"a", "b", "c", "d"}, CorrectAnswer: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.CreateQuestion(quiz.ID, tt.in); !errors.Is(err, ErrInvalidQuestion) {
				t.Errorf("CreateQuestion error = %v, want ErrInvalidQuestion", err)
			}
		})
	}
}

func TestCreateQuestionStoresCanonicalJSON(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	quiz := createTestQuiz(t, db, "Canonical")

	options := []string{"Mercury", "Venus", "Earth", "Mars"}
	question, err := svc.CreateQuestion(quiz.ID, QuestionInput{
		QuestionText:  "Third planet?",
		Options:       options,
		CorrectAnswer: 2,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	var stored model.Question
	if err := db.First(&stored, question.ID).Error; err != nil {
		t.Fatalf("reload question: %v", err)
	}
	if !reflect.DeepEqual(util.DecodeOptions(stored.Options), options) {
		t.Errorf("stored options %q do not decode back to %v", stored.Options, options)
	}
}

func TestUpdateQuestionRewritesLegacyOptions(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	quiz := createTestQuiz(t, db, "Legacy")

	legacy := &model.Question{
		QuizID:        quiz.ID,
		QuestionText:  "Old import",
		Options:       `['one', 'two', 'three', 'four']`,
		CorrectAnswer: 0,
	}
	if err := db.Create(legacy).Error; err != nil {
		t.Fatalf("create legacy question: %v", err)
	}

	updated, err := svc.UpdateQuestion(legacy.ID, QuestionInput{
		QuestionText:  "Old import",
		Options:       []string{"one", "two", "three", "four"},
		CorrectAnswer: 1,
	})
	if err != nil {
		t.Fatalf("UpdateQuestion: %v", err)
	}
	if updated.Options == legacy.Options {
		t.Error("options must be re-encoded as JSON on update")
	}
	if got := util.DecodeOptions(updated.Options); !reflect.DeepEqual(got, []string{"one", "two", "three", "four"}) {
		t.Errorf("decoded options = %v", got)
	}
}

func TestChapterRequiresSubject(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	if _, err := svc.CreateChapter(9999, "Orphan", ""); !errors.Is(err, util.ErrSubjectNotFound) {
		t.Fatalf("CreateChapter error = %v, want ErrSubjectNotFound", err)
	}
}

func TestQuizRequiresChapter(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)

	_, err := svc.CreateQuiz(QuizInput{ChapterID: 9999, Title: "Orphan", Date: time.Now(), Duration: 30})
	if !errors.Is(err, util.ErrChapterNotFound) {
		t.Fatalf("CreateQuiz error = %v, want ErrChapterNotFound", err)
	}
}

func TestDeleteSubjectCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newCatalogService(db)
	attempt := newAttemptService(db)

	user := createTestUser(t, db, "cascade", false)

	subject, err := svc.CreateSubject("Doomed", "")
	if err != nil {
		t.Fatalf("CreateSubject: %v", err)
	}
	chapter, err := svc.CreateChapter(subject.ID, "Doomed Chapter", "")
	if err != nil {
		t.Fatalf("CreateChapter: %v", err)
	}
	quiz, err := svc.CreateQuiz(QuizInput{ChapterID: chapter.ID, Title: "Doomed Quiz", Date: time.Now(), Duration: 30})
	if err != nil {
		t.Fatalf("CreateQuiz: %v", err)
	}
	question, err := svc.CreateQuestion(quiz.ID, QuestionInput{
		QuestionText:  "Q",
		Options:       []string{"a", "b", "c", "d"},
		CorrectAnswer: 0,
	})
	if err != nil {
		t.Fatalf("CreateQuestion: %v", err)
	}

	if _, err := attempt.Submit(quiz.ID, user.ID, map[uint]string{question.ID: "0"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if err := svc.DeleteSubject(subject.ID); err != nil {
		t.Fatalf("DeleteSubject: %v", err)
	}

	remaining := func(name string, query *gorm.DB) {
		var count int64
		if err := query.Count(&count).Error; err != nil {
			t.Fatalf("count %s: %v", name, err)
		}
		if count != 0 {
			t.Errorf("%s not cascaded, %d rows remain", name, count)
		}
	}
	remaining("chapters", db.Model(&model.Chapter{}).Where("subject_id = ?", subject.ID))
	remaining("quizzes", db.Model(&model.Quiz{}).Where("chapter_id = ?", chapter.ID))
	remaining("questions", db.Model(&model.Question{}).Where("quiz_id = ?", quiz.ID))
	remaining("scores", db.Model(&model.Score{}).Where("quiz_id = ?", quiz.ID))
	remaining("answers", db.Model(&model.UserAnswer{}).Where("question_id = ?", question.ID))

	// 成绩随测验一并清理，用户访问只会得到测验不存在
	if _, _, err := attempt.GetQuizForTaking(quiz.ID, user.ID); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("GetQuizForTaking after cascade = %v, want ErrQuizNotFound", err)
	}
}
