package services

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/gin-contrib/sessions"
)

const captchaSessionKey = "captcha_answer"

type CaptchaService struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewCaptchaService() *CaptchaService {
	return &CaptchaService{
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// GenerateMathProblem 返回题面（如 "3 + 5"）和答案，减法结果不为负
func (s *CaptchaService) GenerateMathProblem() (string, int) {
	s.mu.Lock()
	a, b, op := s.rnd.Intn(10), s.rnd.Intn(10), s.rnd.Intn(2)
	s.mu.Unlock()

	if op == 0 {
		return fmt.Sprintf("%d + %d", a, b), a + b
	}
	if a < b {
		a, b = b, a
	}
	return fmt.Sprintf("%d - %d", a, b), a - b
}

// Issue 出一道新题，答案存进会话
func (s *CaptchaService) Issue(sess sessions.Session) string {
	question, answer := s.GenerateMathProblem()
	sess.Set(captchaSessionKey, answer)
	_ = sess.Save()
	return question
}

// Verify 校验后答案立即作废，每道题只能用一次
func (s *CaptchaService) Verify(sess sessions.Session, input int) bool {
	expected, ok := sess.Get(captchaSessionKey).(int)
	sess.Delete(captchaSessionKey)
	_ = sess.Save()
	return ok && expected == input
}
