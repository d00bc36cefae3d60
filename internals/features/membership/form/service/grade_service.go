package service

import (
	"strconv"
	"time"
)

// 생년월일 입력 포맷 (date input 과 동일)
const BirthDateLayout = "2006-01-02"

/* =========================================================
   학년 버킷 계산
   - 만나이: 올해 생일이 아직 안 지났으면 1 빼기
   - 한국 나이 ≈ 만나이 + 1 (태어나면 1살, 새해에 +1 근사)
   - 한국 나이 17 이상 → 고(n-16), 14 이상 → 중(n-13),
     8 이상 → 초(n-7), 1 이상 → 유아
   저장하지 않고 읽을 때마다 다시 계산한다 (기준일이 매일 바뀌므로).
   ========================================================= */

// Grade — 기준일(now)에 대한 학년 버킷. 비어 있거나 파싱 불가면 "".
func Grade(birthDate string, now time.Time) string {
	if birthDate == "" {
		return ""
	}
	birth, err := time.Parse(BirthDateLayout, birthDate)
	if err != nil {
		return ""
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age-- // 올해 생일이 아직 안 지남
	}
	koreanAge := age + 1

	switch {
	case koreanAge >= 17:
		return "고" + strconv.Itoa(koreanAge-16)
	case koreanAge >= 14:
		return "중" + strconv.Itoa(koreanAge-13)
	case koreanAge >= 8:
		return "초" + strconv.Itoa(koreanAge-7)
	case koreanAge >= 1:
		return "유아"
	default:
		return ""
	}
}

// CurrentGrade — 오늘 기준 학년 버킷
func CurrentGrade(birthDate string) string {
	return Grade(birthDate, time.Now())
}
