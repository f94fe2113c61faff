package executor

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	. "github.com/smartystreets/goconvey/convey"
)

// TestLocal tests the execution of process on local machine.
func TestLocal(t *testing.T) {
	logrus.SetLevel(logrus.ErrorLevel)

	Convey("While using Local Shell", t, func() {
		l := NewLocal()

		Convey("The executor should be named", func() {
			So(l.Name(), ShouldEqual, "Local Executor")
		})

		Convey("When blocking infinitely sleep command is executed", func() {
			task, err := l.Execute("sleep inf")
			So(err, ShouldBeNil)

			defer task.EraseOutput()
			defer task.Clean()
			defer task.Stop()

			Convey("Task should be still running and exit code is not available", func() {
				So(task.Status(), ShouldEqual, RUNNING)

				_, err := task.ExitCode()
				So(err, ShouldNotBeNil)
			})

			Convey("When we wait for task termination with the 1ms timeout", func() {
				isTaskTerminated := task.Wait(1 * time.Millisecond)

				Convey("The timeout should exceed and the task should not be terminated", func() {
					So(isTaskTerminated, ShouldBeFalse)
					So(task.Status(), ShouldEqual, RUNNING)
				})
			})

			Convey("When we stop the task", func() {
				err := task.Stop()

				Convey("The task should be terminated and the exit code should indicate a kill", func() {
					So(err, ShouldBeNil)
					So(task.Status(), ShouldEqual, TERMINATED)

					exitCode, err := task.ExitCode()
					So(err, ShouldBeNil)
					// 128 + SIGTERM.
					So(exitCode, ShouldEqual, 143)
				})
			})
		})

		Convey("When command `echo output` is executed", func() {
			task, err := l.Execute("echo output")
			So(err, ShouldBeNil)

			defer task.EraseOutput()
			defer task.Clean()
			defer task.Stop()

			Convey("When we wait for the task to terminate", func() {
				isTaskTerminated := task.Wait(0)
				So(isTaskTerminated, ShouldBeTrue)

				Convey("The task should be terminated with zero exit code", func() {
					So(task.Status(), ShouldEqual, TERMINATED)

					exitCode, err := task.ExitCode()
					So(err, ShouldBeNil)
					So(exitCode, ShouldEqual, 0)
				})

				Convey("And the stdout should contain 'output'", func() {
					output, err := ReadStdout(task)
					So(err, ShouldBeNil)
					So(output, ShouldEqual, "output\n")
				})
			})
		})

		Convey("When command which does not exist is executed", func() {
			task, err := l.Execute("commandThatDoesNotExist")
			So(err, ShouldBeNil)

			defer task.EraseOutput()
			defer task.Clean()
			defer task.Stop()

			Convey("When we wait for the task to terminate, the exit status should be 127", func() {
				task.Wait(0)

				So(task.Status(), ShouldEqual, TERMINATED)

				exitCode, err := task.ExitCode()
				So(err, ShouldBeNil)
				So(exitCode, ShouldEqual, 127)
			})
		})

		Convey("When we execute two tasks in the same time", func() {
			task, err := l.Execute("echo output1")
			task2, err2 := l.Execute("echo output2")
			So(err, ShouldBeNil)
			So(err2, ShouldBeNil)

			defer func() {
				task.EraseOutput()
				task2.EraseOutput()
			}()
			defer func() {
				task.Clean()
				task2.Clean()
			}()

			Convey("When we wait for the tasks to terminate", func() {
				task.Wait(0)
				task2.Wait(0)

				Convey("The tasks should be terminated and their stdouts should match", func() {
					So(task.Status(), ShouldEqual, TERMINATED)
					So(task2.Status(), ShouldEqual, TERMINATED)

					output, err := ReadStdout(task)
					So(err, ShouldBeNil)
					So(output, ShouldEqual, "output1\n")

					output2, err := ReadStdout(task2)
					So(err, ShouldBeNil)
					So(output2, ShouldEqual, "output2\n")
				})
			})
		})
	})
}
