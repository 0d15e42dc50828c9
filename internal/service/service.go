// Package service 애플리케이션을 구성하는 장기 실행 서비스의 공통 생명주기 계약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 백그라운드에서 실행되는 서비스의 생명주기 인터페이스입니다.
//
// Start 는 즉시 반환되어야 하며, 서비스는 serviceStopCtx 가 취소되면 정리 작업을 마친 뒤
// serviceStopWG.Done() 을 호출합니다. 호출자는 Start 전에 serviceStopWG.Add(1) 을 호출합니다.
//
// 종료 요청 없이 서비스가 멈추면 Err() 채널로 원인 에러를 전달하며, 호출자는 이를 받아 프로세스를 종료합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
	Err() <-chan error
}
