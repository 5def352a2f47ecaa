// Package service 애플리케이션을 구성하는 장기 실행 서비스들의 공통 규약을 정의합니다.
package service

import (
	"context"
	"sync"
)

// Service 백그라운드에서 실행되는 서비스의 생명주기를 정의합니다.
//
// 호출자는 Start 호출 전에 serviceStopWG.Add(1)을 수행해야 하며,
// 서비스는 serviceStopCtx가 취소되어 모든 정리가 끝난 뒤 serviceStopWG.Done()을 호출합니다.
// Start가 에러를 반환하는 경우에도 serviceStopWG.Done()은 서비스가 호출합니다.
type Service interface {
	Start(serviceStopCtx context.Context, serviceStopWG *sync.WaitGroup) error
}
