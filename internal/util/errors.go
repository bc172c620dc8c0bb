package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUsernameTaken     = errors.New("该用户名已被注册")
	ErrDOBInFuture       = errors.New("出生日期不能晚于今天")
	ErrCannotDeleteAdmin = errors.New("cannot delete an admin user")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrSubjectNotFound   = errors.New("subject not found")
	ErrChapterNotFound   = errors.New("chapter not found")
	ErrQuizNotFound      = errors.New("quiz not found")
	ErrQuestionNotFound  = errors.New("question not found")
	ErrScoreNotFound     = errors.New("score not found")
	ErrQuizAlreadyTaken  = errors.New("quiz already submitted")
	ErrQuizHasNoQuestion = errors.New("quiz has no questions yet")
)
