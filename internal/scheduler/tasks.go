package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskLeadFollowUp = "leads.followup"

const TaskWorkOrderReminder = "workorders.reminder"

type LeadFollowUpPayload struct {
	LeadID string `json:"leadId"`
}

type WorkOrderReminderPayload struct {
	WorkOrderID string `json:"workOrderId"`
}

func NewLeadFollowUpTask(payload LeadFollowUpPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadFollowUp, data), nil
}

func ParseLeadFollowUpPayload(task *asynq.Task) (LeadFollowUpPayload, error) {
	var payload LeadFollowUpPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return LeadFollowUpPayload{}, err
	}
	return payload, nil
}

func NewWorkOrderReminderTask(payload WorkOrderReminderPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskWorkOrderReminder, data), nil
}

func ParseWorkOrderReminderPayload(task *asynq.Task) (WorkOrderReminderPayload, error) {
	var payload WorkOrderReminderPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return WorkOrderReminderPayload{}, err
	}
	return payload, nil
}
