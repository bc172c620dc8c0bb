package service

import (
	"errors"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"testing"

	"gorm.io/gorm"
)

func newAttemptService(db *gorm.DB) *AttemptService {
	return NewAttemptService(
		repository.NewQuizRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewScoreRepository(db),
	)
}

func TestSubmitScoresAndPersistsAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "alice", false)
	quiz := createTestQuiz(t, db, "Geography")
	q1 := createTestQuestion(t, db, quiz.ID, "Capital of France?", []string{"Paris", "London", "Berlin", "Madrid"}, 0)
	q2 := createTestQuestion(t, db, quiz.ID, "Capital of UK?", []string{"Paris", "London", "Berlin", "Madrid"}, 1)
	q3 := createTestQuestion(t, db, quiz.ID, "Capital of Germany?", []string{"Paris", "London", "Berlin", "Madrid"}, 2)

	score, err := svc.Submit(quiz.ID, user.ID, map[uint]string{
		q1.ID: "0", // 对
		q2.ID: "1", // 对
		q3.ID: "3", // 错
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if score.CorrectAnswers != 2 {
		t.Errorf("CorrectAnswers = %d, want 2", score.CorrectAnswers)
	}
	if score.TotalQuestions != 3 {
		t.Errorf("TotalQuestions = %d, want 3", score.TotalQuestions)
	}
	if score.TotalScore != 66.67 {
		t.Errorf("TotalScore = %v, want 66.67", score.TotalScore)
	}

	var answerCount int64
	if err := db.Model(&model.UserAnswer{}).Where("score_id = ?", score.ID).Count(&answerCount).Error; err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if answerCount != 3 {
		t.Errorf("user answer rows = %d, want 3", answerCount)
	}
}

func TestSubmitTreatsMissingAndNonNumericAsWrong(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "bob", false)
	quiz := createTestQuiz(t, db, "Mixed")
	q1 := createTestQuestion(t, db, quiz.ID, "Q1", []string{"a", "b", "c", "d"}, 0)
	q2 := createTestQuestion(t, db, quiz.ID, "Q2", []string{"a", "b", "c", "d"}, 1)
	createTestQuestion(t, db, quiz.ID, "Q3", []string{"a", "b", "c", "d"}, 2)

	score, err := svc.Submit(quiz.ID, user.ID, map[uint]string{
		q1.ID: "0",   // 对
		q2.ID: "abc", // 非数字按答错
		// q3 缺失
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if score.CorrectAnswers != 1 {
		t.Errorf("CorrectAnswers = %d, want 1", score.CorrectAnswers)
	}
	if score.TotalScore != 33.33 {
		t.Errorf("TotalScore = %v, want 33.33", score.TotalScore)
	}

	// 缺失的题也要落一条空作答记录
	var answerCount int64
	db.Model(&model.UserAnswer{}).Where("score_id = ?", score.ID).Count(&answerCount)
	if answerCount != 3 {
		t.Errorf("user answer rows = %d, want 3", answerCount)
	}
}

func TestSubmitDuplicateRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "carol", false)
	quiz := createTestQuiz(t, db, "Once")
	q1 := createTestQuestion(t, db, quiz.ID, "Q1", []string{"a", "b", "c", "d"}, 0)

	first, err := svc.Submit(quiz.ID, user.ID, map[uint]string{q1.ID: "0"})
	if err != nil {
		t.Fatalf("first Submit: %v", err)
	}

	if _, err := svc.Submit(quiz.ID, user.ID, map[uint]string{q1.ID: "1"}); !errors.Is(err, util.ErrQuizAlreadyTaken) {
		t.Fatalf("second Submit error = %v, want ErrQuizAlreadyTaken", err)
	}

	// 第一次的成绩保持不变
	var scoreCount int64
	db.Model(&model.Score{}).Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&scoreCount)
	if scoreCount != 1 {
		t.Errorf("score rows = %d, want 1", scoreCount)
	}

	var stored model.Score
	if err := db.First(&stored, first.ID).Error; err != nil {
		t.Fatalf("reload score: %v", err)
	}
	if stored.TotalScore != 100 {
		t.Errorf("stored TotalScore = %v, want 100", stored.TotalScore)
	}
}

func TestSubmitDuplicateCaughtByUniqueIndex(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "racer", false)
	quiz := createTestQuiz(t, db, "Raced")
	q1 := createTestQuestion(t, db, quiz.ID, "Q", []string{"a", "b", "c", "d"}, 0)

	score, err := svc.Submit(quiz.ID, user.ID, map[uint]string{q1.ID: "0"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	// 软删除后预检查查不到这条成绩，但 (quiz_id, user_id) 唯一索引里
	// 仍有这一行，复现并发双提交中第二个请求绕过预检查的时刻
	if err := db.Delete(&model.Score{}, score.ID).Error; err != nil {
		t.Fatalf("soft delete score: %v", err)
	}

	if _, err := svc.Submit(quiz.ID, user.ID, map[uint]string{q1.ID: "0"}); !errors.Is(err, util.ErrQuizAlreadyTaken) {
		t.Fatalf("Submit error = %v, want ErrQuizAlreadyTaken", err)
	}
}

func TestSubmitEmptyQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "dave", false)
	quiz := createTestQuiz(t, db, "Empty")

	score, err := svc.Submit(quiz.ID, user.ID, nil)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if score.TotalScore != 0 || score.CorrectAnswers != 0 || score.TotalQuestions != 0 {
		t.Fatalf("score = %v/%d/%d, want 0/0/0", score.TotalScore, score.CorrectAnswers, score.TotalQuestions)
	}

	var answerCount int64
	db.Model(&model.UserAnswer{}).Where("score_id = ?", score.ID).Count(&answerCount)
	if answerCount != 0 {
		t.Fatalf("user answer rows = %d, want 0", answerCount)
	}
}

func TestSubmitUnknownQuiz(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "erin", false)

	if _, err := svc.Submit(9999, user.ID, nil); !errors.Is(err, util.ErrQuizNotFound) {
		t.Fatalf("Submit error = %v, want ErrQuizNotFound", err)
	}
}

func TestGetQuizForTaking(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "frank", false)
	quiz := createTestQuiz(t, db, "Taking")
	createTestQuestion(t, db, quiz.ID, "Q1", []string{"a", "b", "c", "d"}, 2)

	// 选项损坏的题不渲染
	broken := &model.Question{QuizID: quiz.ID, QuestionText: "Broken", Options: "not a list", CorrectAnswer: 0}
	if err := db.Create(broken).Error; err != nil {
		t.Fatalf("create broken question: %v", err)
	}

	detail, existing, err := svc.GetQuizForTaking(quiz.ID, user.ID)
	if err != nil {
		t.Fatalf("GetQuizForTaking: %v", err)
	}
	if existing != nil {
		t.Errorf("existing score = %v, want nil", existing)
	}
	if len(detail.Questions) != 1 {
		t.Fatalf("questions rendered = %d, want 1", len(detail.Questions))
	}
	if len(detail.Questions[0].Options) != 4 {
		t.Errorf("options = %v, want 4 entries", detail.Questions[0].Options)
	}
}

func TestGetQuizForTakingAlreadyTaken(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "grace", false)
	quiz := createTestQuiz(t, db, "Retake")
	q1 := createTestQuestion(t, db, quiz.ID, "Q1", []string{"a", "b", "c", "d"}, 0)

	score, err := svc.Submit(quiz.ID, user.ID, map[uint]string{q1.ID: "0"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	_, existing, err := svc.GetQuizForTaking(quiz.ID, user.ID)
	if !errors.Is(err, util.ErrQuizAlreadyTaken) {
		t.Fatalf("error = %v, want ErrQuizAlreadyTaken", err)
	}
	if existing == nil || existing.ID != score.ID {
		t.Errorf("existing score = %v, want id %d", existing, score.ID)
	}
}

func TestGetResultOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	owner := createTestUser(t, db, "henry", false)
	other := createTestUser(t, db, "intruder", false)
	quiz := createTestQuiz(t, db, "Private")
	q1 := createTestQuestion(t, db, quiz.ID, "Q1", []string{"a", "b", "c", "d"}, 1)

	score, err := svc.Submit(quiz.ID, owner.ID, map[uint]string{q1.ID: "1"})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	detail, err := svc.GetResult(score.ID, owner.ID)
	if err != nil {
		t.Fatalf("GetResult as owner: %v", err)
	}
	if len(detail.Answers) != 1 {
		t.Fatalf("answers = %d, want 1", len(detail.Answers))
	}
	if detail.Answers[0].CorrectAnswer != 1 || detail.Answers[0].UserAnswer != "1" {
		t.Errorf("answer view = %+v", detail.Answers[0])
	}

	if _, err := svc.GetResult(score.ID, other.ID); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("GetResult as other error = %v, want ErrPermissionDenied", err)
	}

	if _, err := svc.GetResult(9999, owner.ID); !errors.Is(err, util.ErrScoreNotFound) {
		t.Fatalf("GetResult missing error = %v, want ErrScoreNotFound", err)
	}
}

func TestListQuizzesMarksCompleted(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "judy", false)
	quizDone := createTestQuiz(t, db, "Done")
	createTestQuiz(t, db, "Pending")
	q1 := createTestQuestion(t, db, quizDone.ID, "Q1", []string{"a", "b", "c", "d"}, 0)

	if _, err := svc.Submit(quizDone.ID, user.ID, map[uint]string{q1.ID: "0"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	rows, completed, err := svc.ListQuizzes(user.ID, "", 0)
	if err != nil {
		t.Fatalf("ListQuizzes: %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("quizzes = %d, want 2", len(rows))
	}
	if len(completed) != 1 || completed[0] != quizDone.ID {
		t.Errorf("completed = %v, want [%d]", completed, quizDone.ID)
	}
}

func TestGetHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newAttemptService(db)

	user := createTestUser(t, db, "kate", false)
	quizA := createTestQuiz(t, db, "First")
	quizB := createTestQuiz(t, db, "Second")
	qa := createTestQuestion(t, db, quizA.ID, "Q", []string{"a", "b", "c", "d"}, 0)
	qb := createTestQuestion(t, db, quizB.ID, "Q", []string{"a", "b", "c", "d"}, 0)

	if _, err := svc.Submit(quizA.ID, user.ID, map[uint]string{qa.ID: "0"}); err != nil {
		t.Fatalf("Submit A: %v", err)
	}
	if _, err := svc.Submit(quizB.ID, user.ID, map[uint]string{qb.ID: "1"}); err != nil {
		t.Fatalf("Submit B: %v", err)
	}

	rows, err := svc.GetHistory(user.ID)
	if err != nil {
		t.Fatalf("GetHistory: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("history rows = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row.QuizTitle == "" || row.SubjectName == "" {
			t.Errorf("history row missing joined names: %+v", row)
		}
	}
}

func TestRoundScore(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{100, 100},
		{2.0 / 3.0 * 100, 66.67},
		{1.0 / 3.0 * 100, 33.33},
		{0, 0},
	}
	for _, tt := range tests {
		if got := roundScore(tt.in); got != tt.want {
			t.Errorf("roundScore(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
