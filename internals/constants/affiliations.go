package constants

// Affiliations — 소속 선택지 (지역 지부 순서 고정, 화면 표기 순서 그대로)
// 핵심 로직은 선택값의 비어있음 여부만 검사하고 목록 대조는 하지 않는다.
var Affiliations = []string{
	"서울지부",
	"경기지부",
	"인천지부",
	"강원지부",
	"대전·세종지부",
	"충북지부",
	"충남지부",
	"대구지부",
	"경북지부",
	"부산지부",
	"울산지부",
	"경남지부",
	"광주지부",
	"전북지부",
	"전남지부",
	"제주지부",
	"해외지부",
	"기타",
}
