package model

/* =========================================================
   SubmissionGate — 제출 전 동의 절차 2 트랙
   - 혜택 안내: 체크 즉시 확인됨 (안내창은 부수 표시일 뿐)
   - 회원 서약: 체크 → 확인 대기 → 확인창에서 동의해야 수락됨
   서약이 accepted 상태일 때만 제출이 허용된다.
   ========================================================= */

// BenefitsState — 혜택 안내 트랙 상태
type BenefitsState int

const (
	BenefitsUnacknowledged BenefitsState = iota
	BenefitsAcknowledged
)

// PledgeState — 회원 서약 트랙 상태
type PledgeState int

const (
	PledgeUnaccepted PledgeState = iota
	PledgePendingConfirmation
	PledgeAccepted
)

func (p PledgeState) String() string {
	switch p {
	case PledgePendingConfirmation:
		return "pending-confirmation"
	case PledgeAccepted:
		return "accepted"
	default:
		return "unaccepted"
	}
}

type SubmissionGate struct {
	Benefits BenefitsState
	Pledge   PledgeState

	// 표시 상태. 열림/닫힘 자체는 동의값을 바꾸지 않는다.
	BenefitsInfoOpen  bool
	PledgeConfirmOpen bool
}

func NewSubmissionGate() SubmissionGate {
	return SubmissionGate{}
}

// SetBenefits — 체크: 확인됨 + 안내창 열기 / 해제: 바로 미확인으로 복귀
func (g *SubmissionGate) SetBenefits(checked bool) {
	if checked {
		g.Benefits = BenefitsAcknowledged
		g.BenefitsInfoOpen = true
		return
	}
	g.Benefits = BenefitsUnacknowledged
}

func (g *SubmissionGate) CloseBenefitsInfo() {
	g.BenefitsInfoOpen = false
}

// SetPledge — 체크: 확인 대기로 전이 + 확인창 열기.
// 해제: 상태와 무관하게 즉시 미수락 (수락 철회에는 확인이 필요 없다).
func (g *SubmissionGate) SetPledge(checked bool) {
	if checked {
		if g.Pledge == PledgeUnaccepted {
			g.Pledge = PledgePendingConfirmation
			g.PledgeConfirmOpen = true
		}
		return
	}
	g.Pledge = PledgeUnaccepted
	g.PledgeConfirmOpen = false
}

// ConfirmPledge — 확인창의 동의 버튼. pledgeAccepted 가 true 가 되는 유일한 경로.
func (g *SubmissionGate) ConfirmPledge() {
	if g.Pledge != PledgePendingConfirmation {
		return
	}
	g.Pledge = PledgeAccepted
	g.PledgeConfirmOpen = false
}

// DismissPledge — 확인창을 동의 없이 닫으면 체크가 풀린 것으로 본다.
func (g *SubmissionGate) DismissPledge() {
	if g.Pledge != PledgePendingConfirmation {
		return
	}
	g.Pledge = PledgeUnaccepted
	g.PledgeConfirmOpen = false
}

// CanSubmit — 서약 수락 상태에서만 제출 가능
func (g *SubmissionGate) CanSubmit() bool {
	return g.Pledge == PledgeAccepted
}

func (g *SubmissionGate) BenefitsAcknowledged() bool {
	return g.Benefits == BenefitsAcknowledged
}

func (g *SubmissionGate) PledgeAccepted() bool {
	return g.Pledge == PledgeAccepted
}
