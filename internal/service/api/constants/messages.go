package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	// 404 Not Found
	ErrMsgNotFound = "요청한 리소스를 찾을 수 없습니다"

	// 405 Method Not Allowed
	ErrMsgMethodNotAllowed = "허용되지 않은 메서드입니다"

	// 429 Too Many Requests
	ErrMsgTooManyRequests = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"

	// 500 Internal Server Error
	ErrMsgInternalServer = "내부 서버 오류가 발생했습니다"
)
