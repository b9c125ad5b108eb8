package ledger

import (
	"fmt"
	"sync"

	"github.com/AlgoZombies/algozombies-ledger-backend/internal/platform/database"
	"github.com/AlgoZombies/algozombies-ledger-backend/pkg/lifecycle"
	"gorm.io/gorm"
)

// 账本采用单写入者、逐请求的执行模型：所有变更操作被提交到同一条
// 队列，由唯一的执行器Goroutine逐个在独立的数据库事务中跑完
// (读取、校验、写入、可选的转账)，然后才开始下一个。串行化由构造保证，
// 任何操作都不可能观察到另一个操作的部分效果。只读查询不经过执行器。

// task 是提交给执行器的单个原子操作
type task struct {
	fn    func(tx *gorm.DB) error
	reply chan error
}

// ledgerExecutor 是单一写入者，负责按提交顺序执行账本变更
type ledgerExecutor struct {
	taskChan      chan task
	isShutdown    bool
	shutdownMutex sync.Mutex
}

// globalExecutor 是一个私有的、全局的执行器实例
var globalExecutor = &ledgerExecutor{
	taskChan: make(chan task, 4096),
}

// StartExecutor 启动执行器的主处理循环。
// 它接收两个生命周期句柄：优雅停机信号触发队列清空，
// 强制停机信号则放弃剩余任务。
func StartExecutor(gracefulHandle, forcefulHandle *lifecycle.Handle) {
	go globalExecutor.runMainLoop(gracefulHandle, forcefulHandle)
}

// submit 将任务放入队列，返回是否成功。
func (e *ledgerExecutor) submit(t task) error {
	e.shutdownMutex.Lock()
	defer e.shutdownMutex.Unlock()
	if e.isShutdown {
		return ErrShuttingDown
	}
	select {
	case e.taskChan <- t:
		return nil
	default:
		return ErrQueueFull
	}
}

// markShutdown 拒绝后续的任务提交。
func (e *ledgerExecutor) markShutdown() {
	e.shutdownMutex.Lock()
	e.isShutdown = true
	e.shutdownMutex.Unlock()
}

func (e *ledgerExecutor) runMainLoop(gracefulHandle, forcefulHandle *lifecycle.Handle) {
	defer gracefulHandle.Close()
	defer forcefulHandle.Close()
	fmt.Println("账本执行器 (Ledger Executor) 已启动。")

	for {
		select {
		case t := <-e.taskChan:
			// 每个任务在自己的事务中运行到完成；事务内任何错误
			// 都会让GORM回滚全部暂存写入，实现逐调用的全有或全无
			t.reply <- database.DB.Transaction(t.fn)
		case <-gracefulHandle.Done():
			e.markShutdown()
			e.drainRemainingTasks(forcefulHandle)
			return
		}
	}
}

// drainRemainingTasks 在优雅停机阶段处理完队列中剩余的任务。
// 如果期间收到强制停机信号，剩余任务以ErrShuttingDown回复。
func (e *ledgerExecutor) drainRemainingTasks(forcefulHandle *lifecycle.Handle) {
	for {
		select {
		case t := <-e.taskChan:
			select {
			case <-forcefulHandle.Done():
				t.reply <- ErrShuttingDown
			default:
				t.reply <- database.DB.Transaction(t.fn)
			}
		default:
			fmt.Println("账本执行器: 队列已清空，正在退出。")
			return
		}
	}
}

// Execute 是所有用户可见变更操作的唯一入口。
// 它先做预算前置检查（在任何读写发生之前），然后将操作提交给
// 单写入者执行器并阻塞等待结果。
func Execute(budget, cost uint64, fn func(tx *gorm.DB) error) error {
	if err := ensureBudget(budget, cost); err != nil {
		return err
	}
	t := task{fn: fn, reply: make(chan error, 1)}
	if err := globalExecutor.submit(t); err != nil {
		return err
	}
	return <-t.reply
}

// ExecuteAdmin 提交一个所有者管理操作。
// 管理操作与链上合约一致，不做预算检查，但同样经过单写入者串行化。
func ExecuteAdmin(fn func(tx *gorm.DB) error) error {
	t := task{fn: fn, reply: make(chan error, 1)}
	if err := globalExecutor.submit(t); err != nil {
		return err
	}
	return <-t.reply
}
