package service

import (
	"errors"
	"math"
	"quiz_platform_backend/internal/model"
	"quiz_platform_backend/internal/repository"
	"quiz_platform_backend/internal/util"
	"strconv"
	"time"

	"gorm.io/gorm"
)

// AttemptService 负责答题流程：取题、判分、落库、查看结果与历史
type AttemptService struct {
	QuizRepo     *repository.QuizRepository
	QuestionRepo *repository.QuestionRepository
	ScoreRepo    *repository.ScoreRepository
}

func NewAttemptService(quizRepo *repository.QuizRepository, questionRepo *repository.QuestionRepository, scoreRepo *repository.ScoreRepository) *AttemptService {
	return &AttemptService{
		QuizRepo:     quizRepo,
		QuestionRepo: questionRepo,
		ScoreRepo:    scoreRepo,
	}
}

// TakeQuizQuestion 学生端题目视图，不含正确答案
type TakeQuizQuestion struct {
	ID           uint     `json:"id"`
	QuestionText string   `json:"questionText"`
	Options      []string `json:"options"`
}

type TakeQuizDetail struct {
	Quiz      *model.Quiz        `json:"quiz"`
	Questions []TakeQuizQuestion `json:"questions"`
}

// GetQuizForTaking 返回待答的测验和题目。已提交过时返回 ErrQuizAlreadyTaken
// 和已有成绩，供调用方重定向到结果页；没有题目的测验返回 ErrQuizHasNoQuestion。
func (s *AttemptService) GetQuizForTaking(quizID, userID uint) (*TakeQuizDetail, *model.Score, error) {
	if existing, err := s.ScoreRepo.FindByUserAndQuiz(userID, quizID); err == nil {
		return nil, existing, util.ErrQuizAlreadyTaken
	}

	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.ErrQuizNotFound
		}
		return nil, nil, err
	}

	questions, err := s.QuestionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, nil, err
	}
	if len(questions) == 0 {
		return nil, nil, util.ErrQuizHasNoQuestion
	}

	detail := &TakeQuizDetail{Quiz: quiz, Questions: make([]TakeQuizQuestion, 0, len(questions))}
	for _, q := range questions {
		options := util.DecodeOptions(q.Options)
		if len(options) == 0 {
			// 选项解析失败的题跳过渲染
			continue
		}
		detail.Questions = append(detail.Questions, TakeQuizQuestion{
			ID:           q.ID,
			QuestionText: q.QuestionText,
			Options:      options,
		})
	}

	return detail, nil, nil
}

// Submit 判分并原子写入一条成绩和每题一条作答记录。
// answers 的键是题目ID，值是提交的选项下标原文；缺失或非数字一律按答错处理。
// 同一用户重复提交同一测验返回 ErrQuizAlreadyTaken。
func (s *AttemptService) Submit(quizID, userID uint, answers map[uint]string) (*model.Score, error) {
	if _, err := s.ScoreRepo.FindByUserAndQuiz(userID, quizID); err == nil {
		return nil, util.ErrQuizAlreadyTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if _, err := s.QuizRepo.FindByID(quizID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	questions, err := s.QuestionRepo.ListByQuiz(quizID)
	if err != nil {
		return nil, err
	}

	// 空测验允许提交，得到 0/0 的成绩记录
	totalQuestions := len(questions)
	correctAnswers := 0
	userAnswers := make([]model.UserAnswer, 0, totalQuestions)

	for _, q := range questions {
		submitted := answers[q.ID]
		userAnswers = append(userAnswers, model.UserAnswer{
			QuestionID: q.ID,
			UserAnswer: submitted,
		})
		if selected, err := strconv.Atoi(submitted); err == nil && selected == q.CorrectAnswer {
			correctAnswers++
		}
	}

	var percentage float64
	if totalQuestions > 0 {
		percentage = roundScore(float64(correctAnswers) / float64(totalQuestions) * 100)
	}

	score := &model.Score{
		QuizID:         quizID,
		UserID:         userID,
		Timestamp:      time.Now(),
		TotalScore:     percentage,
		CorrectAnswers: correctAnswers,
		TotalQuestions: totalQuestions,
	}

	if err := s.ScoreRepo.CreateWithAnswers(score, userAnswers); err != nil {
		// 并发双提交会穿过上面的预检查，由唯一索引兜底
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrQuizAlreadyTaken
		}
		return nil, err
	}

	return score, nil
}

// roundScore 百分比保留两位小数
func roundScore(v float64) float64 {
	return math.Round(v*100) / 100
}

// ResultAnswer 结果页单题视图：题面、选项、提交值与正确下标
type ResultAnswer struct {
	QuestionID    uint     `json:"questionId"`
	QuestionText  string   `json:"questionText"`
	Options       []string `json:"options"`
	UserAnswer    string   `json:"userAnswer"`
	CorrectAnswer int      `json:"correctAnswer"`
}

type ResultDetail struct {
	Score   *model.Score   `json:"score"`
	Quiz    *model.Quiz    `json:"quiz"`
	Answers []ResultAnswer `json:"answers"`
}

// GetResult 仅允许成绩所有者查看；他人访问返回 ErrPermissionDenied
func (s *AttemptService) GetResult(scoreID, userID uint) (*ResultDetail, error) {
	score, err := s.ScoreRepo.FindByID(scoreID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrScoreNotFound
		}
		return nil, err
	}

	if score.UserID != userID {
		return nil, util.ErrPermissionDenied
	}

	quiz, err := s.QuizRepo.FindByID(score.QuizID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	answers, err := s.ScoreRepo.ListAnswers(scoreID)
	if err != nil {
		return nil, err
	}

	detail := &ResultDetail{Score: score, Quiz: quiz, Answers: make([]ResultAnswer, 0, len(answers))}
	for _, a := range answers {
		question, err := s.QuestionRepo.FindByID(a.QuestionID)
		if err != nil {
			continue
		}
		detail.Answers = append(detail.Answers, ResultAnswer{
			QuestionID:    question.ID,
			QuestionText:  question.QuestionText,
			Options:       util.DecodeOptions(question.Options),
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: question.CorrectAnswer,
		})
	}

	return detail, nil
}

func (s *AttemptService) GetHistory(userID uint) ([]repository.HistoryRow, error) {
	return s.ScoreRepo.HistoryByUser(userID)
}

// ListQuizzes 学生端测验列表，附带当前用户已完成的测验ID
func (s *AttemptService) ListQuizzes(userID uint, search string, subjectID uint) ([]repository.QuizRow, []uint, error) {
	rows, err := s.QuizRepo.List(search, 0, subjectID)
	if err != nil {
		return nil, nil, err
	}
	completed, err := s.ScoreRepo.CompletedQuizIDs(userID)
	if err != nil {
		return nil, nil, err
	}
	return rows, completed, nil
}
