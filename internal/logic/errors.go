package logic

import "errors"

// 业务拒绝类错误，handler层转为结构化denied响应而非系统错误
var (
	ErrFoundationNotFound      = errors.New("建造者账户不存在")
	ErrCreationNotFound        = errors.New("作品不存在")
	ErrCreationNotSellable     = errors.New("作品未发布，无法售卖")
	ErrNoActivePayoutAccount   = errors.New("建造者没有可用的收款账户，无法完成售卖")
	ErrPayoutAccountExists     = errors.New("收款账户已开通")
	ErrOriginalSaleNotFound    = errors.New("未找到对应的原始售卖记录")
	ErrPayoutAccountNotFound   = errors.New("没有找到收款账户")
	ErrUnknownContributionType = errors.New("未知的贡献类型")
)
